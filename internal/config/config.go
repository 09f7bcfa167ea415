package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/marcus/due/internal/filelock"
	"github.com/marcus/due/internal/models"
)

const configFile = ".due/config.json"
const lockFile = ".due/config.json.lock"

// Environment overrides, applied by Resolve
const (
	EnvBaseURL  = "DUE_BASE_URL"
	EnvDataFile = "DUE_DATA"
	EnvStorage  = "DUE_STORAGE"
)

// DefaultDataFile is read when neither config nor flags name a data file
const DefaultDataFile = ".due/assignments.json"

var ErrUnknownKey = errors.New("unknown config key")

// Load reads the config from disk
func Load(baseDir string) (*models.Config, error) {
	configPath := filepath.Join(baseDir, configFile)

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return &models.Config{}, nil
		}
		return nil, err
	}

	var cfg models.Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", configPath, err)
	}

	return &cfg, nil
}

// Save writes the config to disk using atomic write (temp file + rename)
func Save(baseDir string, cfg *models.Config) error {
	configPath := filepath.Join(baseDir, configFile)

	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, "config-*.json.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}

	return os.Rename(tmpName, configPath)
}

// Update loads, mutates and saves the config while holding the config lock
func Update(baseDir string, fn func(*models.Config) error) error {
	return filelock.With(filepath.Join(baseDir, lockFile), func() error {
		cfg, err := Load(baseDir)
		if err != nil {
			return err
		}
		if err := fn(cfg); err != nil {
			return err
		}
		return Save(baseDir, cfg)
	})
}

// Resolve loads the config and applies environment overrides and defaults.
// The result is not meant to be saved back.
func Resolve(baseDir string) (*models.Config, error) {
	cfg, err := Load(baseDir)
	if err != nil {
		return nil, err
	}
	if v := os.Getenv(EnvBaseURL); v != "" {
		cfg.BaseURL = v
	}
	if v := os.Getenv(EnvDataFile); v != "" {
		cfg.DataFile = v
	}
	if v := os.Getenv(EnvStorage); v != "" {
		cfg.Storage = models.StorageBackend(v)
	}
	if cfg.Storage == "" {
		cfg.Storage = models.StorageFile
	}
	if cfg.DataFile == "" {
		cfg.DataFile = DefaultDataFile
	}
	return cfg, nil
}

// DataPath returns the data file from cfg, relative paths taken from baseDir
func DataPath(baseDir string, cfg *models.Config) string {
	p := cfg.DataFile
	if p == "" {
		p = DefaultDataFile
	}
	if p == "-" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(baseDir, p)
}

type field struct {
	get func(*models.Config) string
	set func(*models.Config, string) error
}

var fields = map[string]field{
	"base_url": {
		get: func(c *models.Config) string { return c.BaseURL },
		set: func(c *models.Config, v string) error {
			c.BaseURL = strings.TrimRight(v, "/")
			return nil
		},
	},
	"storage": {
		get: func(c *models.Config) string { return string(c.Storage) },
		set: func(c *models.Config, v string) error {
			switch b := models.StorageBackend(v); b {
			case models.StorageFile, models.StorageSQLite, "":
				c.Storage = b
				return nil
			}
			return fmt.Errorf("storage must be %q or %q, got %q", models.StorageFile, models.StorageSQLite, v)
		},
	},
	"data_file": {
		get: func(c *models.Config) string { return c.DataFile },
		set: func(c *models.Config, v string) error {
			c.DataFile = v
			return nil
		},
	},
	"case_sensitive_name": {
		get: func(c *models.Config) string { return strconv.FormatBool(c.CaseSensitiveName) },
		set: func(c *models.Config, v string) error {
			if v == "" {
				c.CaseSensitiveName = false
				return nil
			}
			b, err := strconv.ParseBool(v)
			if err != nil {
				return fmt.Errorf("case_sensitive_name: %w", err)
			}
			c.CaseSensitiveName = b
			return nil
		},
	},
}

// Keys returns the settable config keys, sorted
func Keys() []string {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Get returns the value of key in cfg
func Get(cfg *models.Config, key string) (string, error) {
	f, ok := fields[key]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownKey, key)
	}
	return f.get(cfg), nil
}

// Set assigns value to key in cfg. An empty value resets the key.
func Set(cfg *models.Config, key, value string) error {
	f, ok := fields[key]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownKey, key)
	}
	return f.set(cfg, value)
}

// SetValue updates one key on disk
func SetValue(baseDir, key, value string) error {
	return Update(baseDir, func(cfg *models.Config) error {
		return Set(cfg, key, value)
	})
}

// Package workdir resolves the due state root directory. A directory is a
// root when it contains a .due directory, or a .due-root file naming the
// real root.
package workdir

import (
	"os"
	"path/filepath"
	"strings"
)

const (
	StateDir = ".due"
	rootFile = ".due-root"
)

// ResolveBaseDir walks from start towards the filesystem root and returns
// the first directory holding a .due directory or a .due-root redirect.
// A redirect with a relative path is taken from the directory holding it.
// When no marker is found, start is returned unchanged.
func ResolveBaseDir(start string) string {
	dir, err := filepath.Abs(start)
	if err != nil {
		return start
	}
	for {
		if target, ok := readRootFile(dir); ok {
			return target
		}
		if fi, err := os.Stat(filepath.Join(dir, StateDir)); err == nil && fi.IsDir() {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return start
		}
		dir = parent
	}
}

func readRootFile(dir string) (string, bool) {
	content, err := os.ReadFile(filepath.Join(dir, rootFile))
	if err != nil {
		return "", false
	}
	resolved := strings.TrimSpace(string(content))
	if resolved == "" {
		return "", false
	}
	if !filepath.IsAbs(resolved) {
		resolved = filepath.Join(dir, resolved)
	}
	return filepath.Clean(resolved), true
}

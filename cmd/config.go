package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/marcus/due/internal/config"
	"github.com/marcus/due/internal/output"
	"github.com/marcus/due/internal/suggest"
)

var configCmd = &cobra.Command{
	Use:     "config",
	Short:   "Manage due configuration",
	GroupID: "system",
	Long: `Manage .due/config.json.

Keys:
  base_url             LMS root the assignment links are built from
  storage              where hidden rows are kept: file or sqlite
  data_file            assignment file (default .due/assignments.json)
  case_sensitive_name  match the name filter case-sensitively

DUE_BASE_URL, DUE_DATA and DUE_STORAGE override the file.`,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a config value",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, val := args[0], args[1]
		if err := config.SetValue(getBaseDir(), key, val); err != nil {
			output.Error("%v", err)
			printKeyHelp(err, key)
			return err
		}
		output.Success("set %s = %s", key, val)
		return nil
	},
}

var configGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Get a config value",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Resolve(getBaseDir())
		if err != nil {
			output.Error("load config: %v", err)
			return err
		}
		val, err := config.Get(cfg, args[0])
		if err != nil {
			output.Error("%v", err)
			printKeyHelp(err, args[0])
			return err
		}
		fmt.Println(val)
		return nil
	},
}

var configListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all config values",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Resolve(getBaseDir())
		if err != nil {
			output.Error("load config: %v", err)
			return err
		}

		if jsonOut, _ := cmd.Flags().GetBool("json"); jsonOut {
			return output.JSON(cfg)
		}
		for _, key := range config.Keys() {
			val, _ := config.Get(cfg, key)
			fmt.Printf("%s = %s\n", key, val)
		}
		return nil
	},
}

// printKeyHelp lists the valid keys after an unknown-key error
func printKeyHelp(err error, key string) {
	if !errors.Is(err, config.ErrUnknownKey) {
		return
	}
	if hint := suggest.Hint(key, config.Keys()); hint != "" {
		fmt.Println(hint)
	}
	fmt.Println("Valid keys:", strings.Join(config.Keys(), ", "))
}

func init() {
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configListCmd)
	rootCmd.AddCommand(configCmd)

	configListCmd.Flags().Bool("json", false, "print as JSON")
}

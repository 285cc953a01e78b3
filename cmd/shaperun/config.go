package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/shaperun/internal/config"
	"github.com/vovakirdan/shaperun/internal/games/shaperun"
)

var flagFormat string

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or export the runner configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	Long: `Print the configuration a run would use, after --config and
--difficulty are applied.

Examples:
  shaperun config show
  shaperun config show --format toml --difficulty hard`,
	Args: cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		cfg, err := shaperun.LoadConfig()
		if err != nil {
			return err
		}
		data, err := config.Encode(cfg, flagFormat)
		if err != nil {
			return err
		}
		_, err = os.Stdout.Write(data)
		return err
	},
}

var configExportCmd = &cobra.Command{
	Use:   "export [path]",
	Short: "Write the effective configuration to a file",
	Long: `Write the effective configuration to a file. The format follows the
file extension (.toml or .yaml). Without a path the file is written to
~/.shaperun/configs/shaperun.yaml, where it is picked up automatically.

Examples:
  shaperun config export
  shaperun config export ./runner.toml
  shaperun config export ./hard.yaml --difficulty hard`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		path, err := exportPath(args)
		if err != nil {
			return err
		}
		cfg, err := shaperun.LoadConfig()
		if err != nil {
			return err
		}
		if err := config.Export(cfg, path); err != nil {
			return err
		}
		fmt.Printf("Configuration written to %s\n", path)
		return nil
	},
}

func init() {
	configShowCmd.Flags().StringVar(&flagFormat, "format", "yaml", "Output format: yaml or toml")
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configExportCmd)
}

func exportPath(args []string) (string, error) {
	if len(args) == 1 {
		path := args[0]
		if ext := strings.ToLower(filepath.Ext(path)); ext != ".yaml" && ext != ".yml" && ext != ".toml" {
			return "", fmt.Errorf("unsupported config extension %q (use .yaml or .toml)", ext)
		}
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot find home directory: %w", err)
	}
	return filepath.Join(home, ".shaperun", "configs", config.FileName), nil
}

package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"

	"github.com/jmylchreest/glance/internal/config"
)

var configInitOpts struct {
	force bool
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect or create the config file",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration as TOML",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig(globalOpts.configPath)
		if err != nil {
			return err
		}
		return toml.NewEncoder(cmd.OutOrStdout()).Encode(cfg)
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the default configuration to the config path",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path := globalOpts.configPath
		if path == "" {
			path = config.ConfigPath()
		}

		if _, err := os.Stat(path); err == nil && !configInitOpts.force {
			return fmt.Errorf("%s already exists (use --force to overwrite)", path)
		} else if err != nil && !errors.Is(err, os.ErrNotExist) {
			return err
		}

		if err := config.DefaultConfig().Save(path); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), path)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd, configInitCmd)

	configInitCmd.Flags().BoolVarP(&configInitOpts.force, "force", "f", false,
		"Overwrite an existing config file")
}

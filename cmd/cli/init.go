package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/QTest-hq/clientgen/internal/config"
	"github.com/spf13/cobra"
)

func initCmd() *cobra.Command {
	var (
		dir   string
		force bool
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a default .clientgen.yaml",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := filepath.Join(dir, config.ProjectFile)
			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("%s already exists, use --force to overwrite", path)
			}

			cfg := config.DefaultProjectConfig()
			cfg.Client.Path = "client.bal"
			cfg.Client.TypesPath = "types.bal"
			cfg.Rename.NameList = "names.txt"
			cfg.Template.Path = "lib.bal"

			if err := config.SaveProjectConfig(dir, cfg); err != nil {
				return fmt.Errorf("failed to write %s: %w", path, err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", path)
			return nil
		},
	}

	cmd.Flags().StringVarP(&dir, "dir", "d", ".", "Directory to write the config to")
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing config")

	return cmd
}

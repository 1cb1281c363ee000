package main

import (
	"fmt"

	"github.com/QTest-hq/clientgen/internal/config"
	"github.com/QTest-hq/clientgen/internal/rename"
	"github.com/QTest-hq/clientgen/internal/source"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func renameCmd(a *app) *cobra.Command {
	var (
		inplace        bool
		requireClean   bool
		prefix         string
		className      string
		generatedClass string
	)

	cmd := &cobra.Command{
		Use:   "rename [client] [types] [namelist]",
		Short: "Rename the functions and types of a generated client",
		Long: `Rename the remote functions of a generated client file, apply the
name-list regex renames to it and its types file, and add parameter doc
comments. Paths not given fall back to .clientgen.yaml.

Examples:
  clientgen rename client.bal types.bal names.txt            # Write new_client.bal and new_types.bal
  clientgen rename client.bal types.bal names.txt --inplace  # Overwrite both files
  clientgen rename --inplace --require-clean                 # Paths from .clientgen.yaml, refuse dirty files`,
		Args: cobra.MaximumNArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			pc, err := loadProject(&config.ProjectConfig{
				Client: config.ClientConfig{ClassName: className, GeneratedClass: generatedClass},
				Rename: config.RenameConfig{Prefix: prefix},
			})
			if err != nil {
				return err
			}

			clientPath, err := argOr(args, 0, pc.Client.Path, "client file")
			if err != nil {
				return err
			}
			typesPath, err := argOr(args, 1, pc.Client.TypesPath, "types file")
			if err != nil {
				return err
			}
			nameList, err := argOr(args, 2, pc.Rename.NameList, "name list")
			if err != nil {
				return err
			}

			inplace = inplace || a.cfg.InPlace
			if inplace && (requireClean || a.cfg.RequireClean) {
				if err := source.CheckClean(clientPath, typesPath); err != nil {
					return err
				}
			}

			tables, err := rename.ReadNameList(nameList)
			if err != nil {
				return err
			}

			pipeline := rename.NewPipeline(tables)
			pipeline.Scanner = pc.Client.Scanner()
			pipeline.Prefix = pc.Rename.Prefix
			pipeline.GeneratedClass = pc.Client.GeneratedClass
			pipeline.ClassHeader = pc.Client.ClassHeader()

			clientLines, err := source.ReadLines(clientPath)
			if err != nil {
				return fmt.Errorf("%s: %w", clientPath, err)
			}
			typesLines, err := source.ReadLines(typesPath)
			if err != nil {
				return fmt.Errorf("%s: %w", typesPath, err)
			}

			// Both files are rewritten in memory before either is saved
			newClient, err := pipeline.Client(clientLines)
			if err != nil {
				return fmt.Errorf("%s: %w", clientPath, err)
			}
			newTypes := pipeline.Types(typesLines)

			for _, f := range []struct {
				path  string
				lines []string
			}{{clientPath, newClient}, {typesPath, newTypes}} {
				dest, err := source.Save(f.path, f.lines, inplace)
				if err != nil {
					return err
				}
				log.Info().Str("file", dest).Int("lines", len(f.lines)).Msg("renamed")
				fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", dest)
			}

			return nil
		},
	}

	cmd.Flags().BoolVarP(&inplace, "inplace", "i", false, "Overwrite the input files")
	cmd.Flags().BoolVar(&requireClean, "require-clean", false, "Refuse in-place rewrites of files with uncommitted changes")
	cmd.Flags().StringVar(&prefix, "prefix", "", "Prefix stripped by the generic rename (default from config)")
	cmd.Flags().StringVar(&className, "class", "", "Class name written into the client header (default from config)")
	cmd.Flags().StringVar(&generatedClass, "generated-class", "", "Class name emitted by the generator (default from config)")

	return cmd
}

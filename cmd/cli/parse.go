package main

import (
	"fmt"
	"strings"

	"github.com/QTest-hq/clientgen/internal/config"
	"github.com/QTest-hq/clientgen/internal/source"
	"github.com/spf13/cobra"
)

func parseCmd(a *app) *cobra.Command {
	var className string

	cmd := &cobra.Command{
		Use:   "parse [client]",
		Short: "Show the remote functions extracted from a client",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pc, err := loadProject(&config.ProjectConfig{
				Client: config.ClientConfig{ClassName: className},
			})
			if err != nil {
				return err
			}

			clientPath, err := argOr(args, 0, pc.Client.Path, "client file")
			if err != nil {
				return err
			}

			lines, err := source.ReadLines(clientPath)
			if err != nil {
				return fmt.Errorf("%s: %w", clientPath, err)
			}

			functions, err := pc.Client.Scanner().Extract(lines, pc.Client.ClassName)
			if err != nil {
				return fmt.Errorf("%s: %w", clientPath, err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "File: %s\n", clientPath)
			fmt.Fprintf(out, "Class: %s\n", pc.Client.ClassName)
			fmt.Fprintf(out, "Remote functions: %d\n\n", len(functions))

			for i, fn := range functions {
				sig, err := fn.Signature()
				if err != nil {
					return fmt.Errorf("%s: %w", clientPath, err)
				}
				fmt.Fprintf(out, "%d. %s [%d doc lines, %d body lines]\n", i+1, sig.Name, len(fn.Doc), len(fn.Body))
				if len(sig.Params) > 0 {
					params := make([]string, len(sig.Params))
					for j, p := range sig.Params {
						params[j] = p.Type + " " + p.Name
					}
					fmt.Fprintf(out, "   Parameters: %s\n", strings.Join(params, ", "))
				}
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&className, "class", "", "Client class to read (default from config)")

	return cmd
}

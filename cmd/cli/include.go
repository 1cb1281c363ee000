package main

import (
	"errors"
	"fmt"
	"io/fs"
	"slices"

	"github.com/QTest-hq/clientgen/internal/config"
	"github.com/QTest-hq/clientgen/internal/macro"
	"github.com/QTest-hq/clientgen/internal/source"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// includeOptions configures one include pass
type includeOptions struct {
	client   string
	template string
	clean    bool
	inplace  bool
	project  *config.ProjectConfig
}

func includeCmd(a *app) *cobra.Command {
	var (
		clean     bool
		inplace   bool
		className string
	)

	cmd := &cobra.Command{
		Use:   "include [client] [template]",
		Short: "Expand the macro regions of a library template",
		Long: `Regenerate every macro region of the template from the remote functions of
the client class. Paths not given fall back to .clientgen.yaml.

Examples:
  clientgen include client.bal lib.bal            # Write new_lib.bal
  clientgen include client.bal lib.bal --inplace  # Overwrite lib.bal
  clientgen include client.bal lib.bal --clean    # Empty every macro region`,
		Args: cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := newIncludeOptions(a, args, className)
			if err != nil {
				return err
			}
			opts.clean = clean
			opts.inplace = inplace || a.cfg.InPlace

			dest, changed, err := runInclude(opts)
			if err != nil {
				return err
			}
			if changed {
				fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", dest)
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "%s is up to date\n", dest)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&clean, "clean", false, "Remove generated content, keeping the macro lines")
	cmd.Flags().BoolVarP(&inplace, "inplace", "i", false, "Overwrite the template")
	cmd.Flags().StringVar(&className, "class", "", "Client class to read remote functions from (default from config)")

	return cmd
}

func newIncludeOptions(a *app, args []string, className string) (*includeOptions, error) {
	pc, err := loadProject(&config.ProjectConfig{
		Client: config.ClientConfig{ClassName: className},
	})
	if err != nil {
		return nil, err
	}

	client, err := argOr(args, 0, pc.Client.Path, "client file")
	if err != nil {
		return nil, err
	}
	template, err := argOr(args, 1, pc.Template.Path, "template file")
	if err != nil {
		return nil, err
	}

	return &includeOptions{client: client, template: template, project: pc}, nil
}

// runInclude expands the template and saves it unless the output already has
// the expanded content. It reports the destination and whether it was written.
func runInclude(opts *includeOptions) (string, bool, error) {
	clientLines, err := source.ReadLines(opts.client)
	if err != nil {
		return "", false, fmt.Errorf("%s: %w", opts.client, err)
	}
	templateLines, err := source.ReadLines(opts.template)
	if err != nil {
		return "", false, fmt.Errorf("%s: %w", opts.template, err)
	}

	functions, err := opts.project.Client.Scanner().Extract(clientLines, opts.project.Client.ClassName)
	if err != nil {
		return "", false, fmt.Errorf("%s: %w", opts.client, err)
	}

	engine := macro.NewEngine(functions)
	engine.Clean = opts.clean
	engine.IndentSize = opts.project.Template.IndentSize

	out, err := engine.Expand(templateLines)
	if err != nil {
		return "", false, fmt.Errorf("%s: %w", opts.template, err)
	}

	dest := source.OutputPath(opts.template, opts.inplace)
	if current, err := source.ReadLines(dest); err == nil && slices.Equal(current, out) {
		return dest, false, nil
	} else if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return "", false, err
	}

	if _, err := source.Save(opts.template, out, opts.inplace); err != nil {
		return "", false, err
	}
	log.Info().Str("file", dest).Int("functions", len(functions)).Bool("clean", opts.clean).Msg("expanded template")
	return dest, true, nil
}

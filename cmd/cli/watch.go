package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/QTest-hq/clientgen/internal/watch"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func watchCmd(a *app) *cobra.Command {
	var (
		debounce  time.Duration
		clean     bool
		inplace   bool
		className string
	)

	cmd := &cobra.Command{
		Use:   "watch [client] [template]",
		Short: "Re-run the include pass whenever the client or template changes",
		Args:  cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := newIncludeOptions(a, args, className)
			if err != nil {
				return err
			}
			opts.clean = clean
			opts.inplace = inplace || a.cfg.InPlace

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return watchInclude(ctx, opts, debounce, cmd.OutOrStdout())
		},
	}

	cmd.Flags().DurationVar(&debounce, "debounce", watch.DefaultDebounce, "Quiet period before re-running")
	cmd.Flags().BoolVar(&clean, "clean", false, "Remove generated content, keeping the macro lines")
	cmd.Flags().BoolVarP(&inplace, "inplace", "i", false, "Overwrite the template")
	cmd.Flags().StringVar(&className, "class", "", "Client class to read remote functions from (default from config)")

	return cmd
}

// watchInclude runs the include pass once and then after every change until
// ctx is done. Failed passes are logged and the watch continues.
func watchInclude(ctx context.Context, opts *includeOptions, debounce time.Duration, out io.Writer) error {
	pass := func() {
		dest, changed, err := runInclude(opts)
		if err != nil {
			log.Error().Err(err).Msg("include failed")
			return
		}
		if changed {
			fmt.Fprintf(out, "Wrote %s\n", dest)
		}
	}

	pass()
	fmt.Fprintf(out, "Watching %s and %s\n", opts.client, opts.template)

	return watch.Run(ctx, []string{opts.client, opts.template}, debounce, func(changed []string) {
		log.Debug().Strs("changed", changed).Msg("re-running include")
		pass()
	})
}

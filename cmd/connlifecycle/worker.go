package main

import (
	"github.com/fatih/color"
	"github.com/rmorlok/connlifecycle/internal/service/worker"
	"github.com/spf13/cobra"
)

const banner = `
                       __ _ ____                    __
  _________  ____  ___/ /(_) __/__  _______  _____/ /__
 / ___/ __ \/ __ \/ __ / / /_/ _ \/ ___/ / / / ___/ / _ \
/ /__/ /_/ / / / / / // / __/  __/ /__/ /_/ / /__/ /  __/
\___/\____/_/ /_/_/\_/_/_/  \___/\___/\__, /\___/_/\___/
                                     /____/
`

func cmdWorker(c *cli) *cobra.Command {
	var noBanner bool

	cmd := &cobra.Command{
		Use:   "worker",
		Short: "Run the background worker that reconciles the catalog and updates support states on a schedule",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !noBanner {
				color.New(color.FgGreen).Fprint(cmd.OutOrStdout(), banner)
			}

			return worker.Serve(c.cfg)
		},
	}

	cmd.Flags().BoolVar(&noBanner, "no-banner", false, "Don't show banner")

	return cmd
}

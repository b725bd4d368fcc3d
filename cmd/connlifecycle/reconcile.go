package main

import (
	"os"

	"github.com/pkg/errors"
	"github.com/rmorlok/connlifecycle/internal/core/iface"
	"github.com/rmorlok/connlifecycle/internal/registry"
	"github.com/spf13/cobra"
)

func cmdReconcile(c *cli) *cobra.Command {
	var (
		enqueue     bool
		catalogPath string
	)

	cmd := &cobra.Command{
		Use:   "reconcile",
		Short: "Reconcile stored connector definitions with the catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if enqueue && catalogPath != "" {
				return errors.New("--enqueue and --catalog cannot be combined")
			}

			dm := c.dependencies("reconcile")
			defer dm.Close()
			svc := dm.GetCoreService()

			if enqueue {
				info, err := svc.EnqueueReconcileCatalog(cmd.Context())
				if err != nil {
					return err
				}
				return emit(cmd, newTaskInfoJson(info))
			}

			var (
				result *iface.ReconcileResult
				err    error
			)

			if catalogPath != "" {
				data, rerr := os.ReadFile(catalogPath)
				if rerr != nil {
					return errors.Wrapf(rerr, "failed to read catalog '%s'", catalogPath)
				}

				catalog, perr := registry.ParseCatalog(data)
				if perr != nil {
					return perr
				}

				result, err = svc.ReconcileCatalog(cmd.Context(), catalog)
			} else {
				result, err = svc.ReconcileLatestCatalog(cmd.Context())
			}

			if err != nil {
				return err
			}

			return emit(cmd, result)
		},
	}

	cmd.Flags().BoolVar(&enqueue, "enqueue", false, "queue the reconciliation on the worker instead of running it here")
	cmd.Flags().StringVar(&catalogPath, "catalog", "", "reconcile this catalog file instead of the configured registry")

	return cmd
}

package main

import (
	"github.com/pkg/errors"
	"github.com/rmorlok/connlifecycle/internal/service"
	"github.com/spf13/cobra"
)

func cmdMigrate(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply database migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dm := service.NewDependencyManager("migrate", c.cfg)
			defer dm.Close()

			if err := dm.GetDatabase().Migrate(cmd.Context()); err != nil {
				return errors.Wrap(err, "failed to migrate database")
			}

			dm.GetLogger().Info("database migrated")
			return nil
		},
	}
}

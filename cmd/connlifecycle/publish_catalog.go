package main

import (
	"os"

	"github.com/pkg/errors"
	"github.com/rmorlok/connlifecycle/internal/registry"
	"github.com/rmorlok/connlifecycle/internal/service"
	"github.com/spf13/cobra"
)

func cmdPublishCatalog(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "publish-catalog <catalog-file>",
		Short: "Upload a catalog file to the configured blob registry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return errors.Wrapf(err, "failed to read catalog '%s'", args[0])
			}

			catalog, err := registry.ParseCatalog(data)
			if err != nil {
				return err
			}

			dm := service.NewDependencyManager("publish-catalog", c.cfg)
			defer dm.Close()

			publisher, ok := dm.GetRegistryClient().(registry.Publisher)
			if !ok {
				return errors.Errorf("the '%s' registry does not accept published catalogs", c.cfg.GetRoot().Registry.GetProvider())
			}

			if err := publisher.PublishCatalog(cmd.Context(), catalog); err != nil {
				return err
			}

			return emit(cmd, struct {
				Sources      int `json:"sources"`
				Destinations int `json:"destinations"`
			}{
				Sources:      len(catalog.Sources),
				Destinations: len(catalog.Destinations),
			})
		},
	}
}

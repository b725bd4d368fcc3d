package main

import (
	"fmt"

	"github.com/rmorlok/connlifecycle/internal/configschema"
	"github.com/rmorlok/connlifecycle/internal/schema"
	"github.com/spf13/cobra"
)

func cmdConfigSchema() *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:         "config-schema",
		Short:       "Print the JSON schema of the configuration file",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{skipConfigAnnotation: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			if out != "" {
				_, err := configschema.Generate(out)
				return err
			}

			data, err := schema.ConfigSchemaBytes()
			if err != nil {
				return err
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return err
		},
	}

	cmd.Flags().StringVar(&out, "out", "", "write the schema to this path instead of stdout")

	return cmd
}

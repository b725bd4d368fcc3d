package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

func emit(cmd *cobra.Command, v interface{}) error {
	formatted, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(), string(formatted))
	return err
}

package main

import (
	"context"
	"fmt"

	"store-catalog/internal/service"

	"github.com/spf13/cobra"
)

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create the catalog tables if they do not exist",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			// opening the catalog migrates it
			return withCatalog(cmd, func(ctx context.Context, catalog *service.CatalogService) error {
				fmt.Fprintln(cmd.OutOrStdout(), "schema up to date")
				return nil
			})
		},
	}
}

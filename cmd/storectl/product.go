package main

import (
	"context"

	"store-catalog/internal/models"
	"store-catalog/internal/service"

	"github.com/spf13/cobra"
)

var productHeader = []string{"ID", "NAME", "PRICE", "STOCK", "DESCRIPTION", "UPDATED"}

func productRow(p models.Product) []string {
	return []string{p.ID, p.Name, p.Price.StringFixed(2), itoa(p.Stock), p.Description, formatTime(p.LastUpdateDate)}
}

func newProductCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "product",
		Short: "Manage products",
	}

	create := &cobra.Command{
		Use:   "create",
		Short: "Create a product",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var req service.CreateProductRequest
			req.Name, _ = cmd.Flags().GetString("name")
			req.Description, _ = cmd.Flags().GetString("description")
			req.Stock, _ = cmd.Flags().GetInt("stock")
			rawPrice, _ := cmd.Flags().GetString("price")
			price, err := parseDecimal("price", rawPrice)
			if err != nil {
				return err
			}
			req.Price = price

			return withCatalog(cmd, func(ctx context.Context, catalog *service.CatalogService) error {
				product, err := catalog.CreateProduct(ctx, &req)
				if err != nil {
					return err
				}
				return printResult(cmd.OutOrStdout(), product, productHeader, [][]string{productRow(*product)})
			})
		},
	}
	productFlags(create)

	list := &cobra.Command{
		Use:   "list",
		Short: "List products, most recent first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withCatalog(cmd, func(ctx context.Context, catalog *service.CatalogService) error {
				products, err := catalog.ListProducts(ctx)
				if err != nil {
					return err
				}
				rows := make([][]string, 0, len(products))
				for _, p := range products {
					rows = append(rows, productRow(p))
				}
				return printResult(cmd.OutOrStdout(), products, productHeader, rows)
			})
		},
	}

	get := &cobra.Command{
		Use:   "get <id>",
		Short: "Show one product",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withCatalog(cmd, func(ctx context.Context, catalog *service.CatalogService) error {
				product, err := catalog.GetProduct(ctx, args[0])
				if err != nil {
					return err
				}
				return printResult(cmd.OutOrStdout(), product, productHeader, [][]string{productRow(*product)})
			})
		},
	}

	update := &cobra.Command{
		Use:   "update <id>",
		Short: "Change the given fields of a product",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			price, err := changedDecimal(cmd, "price")
			if err != nil {
				return err
			}
			patch := models.ProductPatch{
				Name:        changedString(cmd, "name"),
				Description: changedString(cmd, "description"),
				Price:       price,
				Stock:       changedInt(cmd, "stock"),
			}

			return withCatalog(cmd, func(ctx context.Context, catalog *service.CatalogService) error {
				product, err := catalog.UpdateProduct(ctx, args[0], patch)
				if err != nil {
					return err
				}
				return printResult(cmd.OutOrStdout(), product, productHeader, [][]string{productRow(*product)})
			})
		},
	}
	productFlags(update)

	del := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a product and every order for it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withCatalog(cmd, func(ctx context.Context, catalog *service.CatalogService) error {
				cascaded, err := catalog.DeleteProduct(ctx, args[0])
				if err != nil {
					return err
				}
				return printDeleted(cmd, args[0], &cascaded)
			})
		},
	}

	cmd.AddCommand(create, list, get, update, del)
	return cmd
}

func productFlags(cmd *cobra.Command) {
	cmd.Flags().String("name", "", "product name")
	cmd.Flags().String("description", "", "product description")
	cmd.Flags().String("price", "0", "unit price")
	cmd.Flags().Int("stock", 0, "units in stock")
}

package main

import (
	"context"
	"fmt"

	"store-catalog/internal/models"
	"store-catalog/internal/service"

	"github.com/spf13/cobra"
)

var customerHeader = []string{"ID", "NAME", "EMAIL", "PHONE", "ADDRESS", "UPDATED"}

func customerRow(c models.Customer) []string {
	return []string{c.ID, c.Name, c.Email, c.Phone, c.Address, formatTime(c.LastUpdateDate)}
}

func newCustomerCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "customer",
		Short: "Manage customers",
	}

	create := &cobra.Command{
		Use:   "create",
		Short: "Create a customer",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var req service.CreateCustomerRequest
			req.Name, _ = cmd.Flags().GetString("name")
			req.Email, _ = cmd.Flags().GetString("email")
			req.Phone, _ = cmd.Flags().GetString("phone")
			req.Address, _ = cmd.Flags().GetString("address")

			return withCatalog(cmd, func(ctx context.Context, catalog *service.CatalogService) error {
				customer, err := catalog.CreateCustomer(ctx, &req)
				if err != nil {
					return err
				}
				return printResult(cmd.OutOrStdout(), customer, customerHeader, [][]string{customerRow(*customer)})
			})
		},
	}
	customerFlags(create)

	list := &cobra.Command{
		Use:   "list",
		Short: "List customers, most recent first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withCatalog(cmd, func(ctx context.Context, catalog *service.CatalogService) error {
				customers, err := catalog.ListCustomers(ctx)
				if err != nil {
					return err
				}
				rows := make([][]string, 0, len(customers))
				for _, c := range customers {
					rows = append(rows, customerRow(c))
				}
				return printResult(cmd.OutOrStdout(), customers, customerHeader, rows)
			})
		},
	}

	get := &cobra.Command{
		Use:   "get <id>",
		Short: "Show one customer",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withCatalog(cmd, func(ctx context.Context, catalog *service.CatalogService) error {
				customer, err := catalog.GetCustomer(ctx, args[0])
				if err != nil {
					return err
				}
				return printResult(cmd.OutOrStdout(), customer, customerHeader, [][]string{customerRow(*customer)})
			})
		},
	}

	update := &cobra.Command{
		Use:   "update <id>",
		Short: "Change the given fields of a customer",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			patch := models.CustomerPatch{
				Name:    changedString(cmd, "name"),
				Email:   changedString(cmd, "email"),
				Phone:   changedString(cmd, "phone"),
				Address: changedString(cmd, "address"),
			}

			return withCatalog(cmd, func(ctx context.Context, catalog *service.CatalogService) error {
				customer, err := catalog.UpdateCustomer(ctx, args[0], patch)
				if err != nil {
					return err
				}
				return printResult(cmd.OutOrStdout(), customer, customerHeader, [][]string{customerRow(*customer)})
			})
		},
	}
	customerFlags(update)

	del := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a customer and all of its orders",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withCatalog(cmd, func(ctx context.Context, catalog *service.CatalogService) error {
				cascaded, err := catalog.DeleteCustomer(ctx, args[0])
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

func customerFlags(cmd *cobra.Command) {
	cmd.Flags().String("name", "", "customer name")
	cmd.Flags().String("email", "", "email address")
	cmd.Flags().String("phone", "", "phone number")
	cmd.Flags().String("address", "", "postal address")
}

// printDeleted reports a deletion. cascaded is nil for orders.
func printDeleted(cmd *cobra.Command, id string, cascaded *int64) error {
	result := map[string]interface{}{"deleted": id}
	row := []string{id}
	header := []string{"DELETED"}
	if cascaded != nil {
		result["cascaded_orders"] = *cascaded
		header = append(header, "CASCADED ORDERS")
		row = append(row, fmt.Sprint(*cascaded))
	}
	return printResult(cmd.OutOrStdout(), result, header, [][]string{row})
}

package main

import (
	"context"

	"store-catalog/internal/models"
	"store-catalog/internal/service"

	"github.com/spf13/cobra"
)

var orderHeader = []string{"ID", "CUSTOMER", "PRODUCT", "QTY", "TOTAL", "ORDER DATE"}

func orderRow(o models.Order) []string {
	return []string{o.ID, o.CustomerID, o.ProductID, itoa(o.Quantity), o.TotalAmount.StringFixed(2), formatTime(o.OrderDate)}
}

func printOrders(cmd *cobra.Command, orders []models.Order) error {
	rows := make([][]string, 0, len(orders))
	for _, o := range orders {
		rows = append(rows, orderRow(o))
	}
	return printResult(cmd.OutOrStdout(), orders, orderHeader, rows)
}

func newOrderCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "order",
		Short: "Manage orders",
	}

	create := &cobra.Command{
		Use:   "create",
		Short: "Place an order; the total is fixed at the current product price",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var req service.CreateOrderRequest
			req.CustomerID, _ = cmd.Flags().GetString("customer")
			req.ProductID, _ = cmd.Flags().GetString("product")
			req.Quantity, _ = cmd.Flags().GetInt("quantity")
			orderDate, err := changedTime(cmd, "date")
			if err != nil {
				return err
			}
			req.OrderDate = orderDate

			return withCatalog(cmd, func(ctx context.Context, catalog *service.CatalogService) error {
				order, err := catalog.CreateOrder(ctx, &req)
				if err != nil {
					return err
				}
				return printResult(cmd.OutOrStdout(), order, orderHeader, [][]string{orderRow(*order)})
			})
		},
	}
	orderFlags(create)

	list := &cobra.Command{
		Use:   "list",
		Short: "List orders, most recent first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			customerID, _ := cmd.Flags().GetString("customer")
			productID, _ := cmd.Flags().GetString("product")
			if customerID != "" && productID != "" {
				return usageErrorf("--customer and --product are mutually exclusive")
			}

			return withCatalog(cmd, func(ctx context.Context, catalog *service.CatalogService) error {
				var (
					orders []models.Order
					err    error
				)
				switch {
				case customerID != "":
					orders, err = catalog.CustomerOrders(ctx, customerID)
				case productID != "":
					orders, err = catalog.ProductOrders(ctx, productID)
				default:
					orders, err = catalog.ListOrders(ctx)
				}
				if err != nil {
					return err
				}
				return printOrders(cmd, orders)
			})
		},
	}
	list.Flags().String("customer", "", "only orders of this customer")
	list.Flags().String("product", "", "only orders for this product")

	get := &cobra.Command{
		Use:   "get <id>",
		Short: "Show one order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withCatalog(cmd, func(ctx context.Context, catalog *service.CatalogService) error {
				order, err := catalog.GetOrder(ctx, args[0])
				if err != nil {
					return err
				}
				return printResult(cmd.OutOrStdout(), order, orderHeader, [][]string{orderRow(*order)})
			})
		},
	}

	update := &cobra.Command{
		Use:   "update <id>",
		Short: "Change the given fields of an order",
		Long:  "Change the given fields of an order. The total is only changed when --total is given.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			total, err := changedDecimal(cmd, "total")
			if err != nil {
				return err
			}
			orderDate, err := changedTime(cmd, "date")
			if err != nil {
				return err
			}
			patch := models.OrderPatch{
				CustomerID:  changedString(cmd, "customer"),
				ProductID:   changedString(cmd, "product"),
				Quantity:    changedInt(cmd, "quantity"),
				TotalAmount: total,
				OrderDate:   orderDate,
			}

			return withCatalog(cmd, func(ctx context.Context, catalog *service.CatalogService) error {
				order, err := catalog.UpdateOrder(ctx, args[0], patch)
				if err != nil {
					return err
				}
				return printResult(cmd.OutOrStdout(), order, orderHeader, [][]string{orderRow(*order)})
			})
		},
	}
	orderFlags(update)
	update.Flags().String("total", "", "override the total amount")

	del := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete an order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withCatalog(cmd, func(ctx context.Context, catalog *service.CatalogService) error {
				if err := catalog.DeleteOrder(ctx, args[0]); err != nil {
					return err
				}
				return printDeleted(cmd, args[0], nil)
			})
		},
	}

	cmd.AddCommand(create, list, get, update, del)
	return cmd
}

func orderFlags(cmd *cobra.Command) {
	cmd.Flags().String("customer", "", "customer id")
	cmd.Flags().String("product", "", "product id")
	cmd.Flags().Int("quantity", 0, "quantity ordered")
	cmd.Flags().String("date", "", "order date (RFC 3339), defaults to now")
}

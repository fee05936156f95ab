package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/nvaldebenito/storefront/internal/catalog/domain"
)

func productsCmd() *cobra.Command {
	var filter domain.ListFilter

	cmd := &cobra.Command{
		Use:   "products",
		Short: "Browse the product catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			products, err := app.catalog.ListProducts(app.ctx, filter)
			if err != nil {
				return err
			}

			if len(products) == 0 {
				fmt.Println("No products found.")
				return nil
			}
			renderProducts(products)
			return nil
		},
	}

	cmd.Flags().StringVar(&filter.Search, "search", "", "search term")
	cmd.Flags().StringSliceVar(&filter.Categories, "category", nil, "filter by category (repeatable)")
	cmd.Flags().StringSliceVar(&filter.Brands, "brand", nil, "filter by brand (repeatable)")
	cmd.Flags().StringVar(&filter.Condition, "condition", "all", "product condition (new|used|all)")
	cmd.Flags().Int64Var(&filter.MinPrice, "min-price", 0, "minimum price")
	cmd.Flags().Int64Var(&filter.MaxPrice, "max-price", 0, "maximum price")
	cmd.Flags().StringVar(&filter.OrderBy, "order-by", "", "sort order (price|name|createdAt)")
	cmd.Flags().IntVar(&filter.Page, "page", 1, "page number")
	cmd.Flags().IntVar(&filter.PageSize, "page-size", 8, "results per page")
	return cmd
}

func productCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "product <id>",
		Short: "Show one product with live stock",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := app.catalog.GetProduct(app.ctx, args[0])
			if err != nil {
				return err
			}
			stock, err := app.catalog.CheckStock(app.ctx, args[0])
			if err != nil {
				return err
			}

			fmt.Println(color.CyanString(p.Name))
			if p.Description != "" {
				fmt.Println(p.Description)
			}
			fmt.Printf("Price:    %s\n", formatPrice(p.Price))
			if p.Brand != "" {
				fmt.Printf("Brand:    %s\n", p.Brand)
			}
			if p.Category != "" {
				fmt.Printf("Category: %s\n", p.Category)
			}

			availability := color.GreenString("%d in stock", stock.Stock)
			if !stock.IsAvailable || stock.Stock == 0 {
				availability = color.RedString("not available")
			}
			fmt.Printf("Stock:    %s\n", availability)
			return nil
		},
	}
}

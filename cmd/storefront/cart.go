package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	cartapp "github.com/nvaldebenito/storefront/internal/cart/app"
)

func cartCmd() *cobra.Command {
	var checkStock bool

	cmd := &cobra.Command{
		Use:   "cart",
		Short: "Show and manage the shopping cart",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireLogin(); err != nil {
				return err
			}
			if res := app.cart.Load(app.ctx); !res.Success {
				return fmt.Errorf("%s", res.Message)
			}

			renderCart(app.cart.Store())

			if checkStock {
				issues, err := app.cart.VerifyAvailability(app.ctx)
				if err != nil {
					return err
				}
				for _, issue := range issues {
					fmt.Println(color.YellowString("! %s (x%d): %s", issue.Name, issue.Quantity, issue.Message))
				}
				if len(issues) == 0 && len(app.cart.Store().State().Items) > 0 {
					fmt.Println(color.GreenString("All items still in stock."))
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&checkStock, "check", false, "re-check every line against current stock")

	cmd.AddCommand(
		cartAddCmd(),
		cartUpdateCmd(),
		cartRemoveCmd(),
		cartClearCmd(),
		cartPullCmd(),
		cartSyncCmd(),
	)
	return cmd
}

// runCartOp loads the server cart into the local store, applies one
// operation and reports its result.
func runCartOp(op func() cartapp.Result) error {
	if err := requireLogin(); err != nil {
		return err
	}
	if res := app.cart.Load(app.ctx); !res.Success {
		return fmt.Errorf("%s", res.Message)
	}

	res := op()
	if !res.Success {
		return fmt.Errorf("%s", res.Message)
	}

	fmt.Println(color.GreenString(res.Message))
	renderCart(app.cart.Store())
	return nil
}

func cartAddCmd() *cobra.Command {
	var quantity int

	cmd := &cobra.Command{
		Use:   "add <productID>",
		Short: "Add a product to the cart",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCartOp(func() cartapp.Result {
				return app.cart.AddProduct(app.ctx, args[0], quantity)
			})
		},
	}

	cmd.Flags().IntVarP(&quantity, "quantity", "q", 1, "units to add")
	return cmd
}

func cartUpdateCmd() *cobra.Command {
	var quantity int

	cmd := &cobra.Command{
		Use:   "update <productID>",
		Short: "Set the quantity of a cart line (0 removes it)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCartOp(func() cartapp.Result {
				return app.cart.UpdateProductQuantity(app.ctx, args[0], quantity)
			})
		},
	}

	cmd.Flags().IntVarP(&quantity, "quantity", "q", 1, "new quantity")
	cmd.MarkFlagRequired("quantity")
	return cmd
}

func cartRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "rm <productID>",
		Aliases: []string{"remove"},
		Short:   "Remove a product from the cart",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCartOp(func() cartapp.Result {
				return app.cart.RemoveProduct(app.ctx, args[0])
			})
		},
	}
}

func cartClearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Empty the cart",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCartOp(func() cartapp.Result {
				return app.cart.ClearCart(app.ctx)
			})
		},
	}
}

func cartPullCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "pull",
		Short: "Reload the cart from the server, dropping local divergence",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireLogin(); err != nil {
				return err
			}
			if res := app.cart.Load(app.ctx); !res.Success {
				return fmt.Errorf("%s", res.Message)
			}
			renderCart(app.cart.Store())
			return nil
		},
	}
}

func cartSyncCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sync",
		Short: "Reconcile the cart against current stock and push the result",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireLogin(); err != nil {
				return err
			}
			if res := app.cart.Load(app.ctx); !res.Success {
				return fmt.Errorf("%s", res.Message)
			}

			res, issues := app.cart.Reconcile(app.ctx)
			if !res.Success {
				return fmt.Errorf("%s", res.Message)
			}

			for _, issue := range issues {
				if issue.AvailableStock > 0 {
					fmt.Println(color.YellowString("~ %s clamped to %d (%s)", issue.Name, issue.AvailableStock, issue.Message))
				} else {
					fmt.Println(color.YellowString("- %s dropped (%s)", issue.Name, issue.Message))
				}
			}
			fmt.Println(color.GreenString(res.Message))
			renderCart(app.cart.Store())
			return nil
		},
	}
}

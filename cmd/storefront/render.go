package main

import (
	"fmt"
	"strings"

	"github.com/fatih/color"

	cartapp "github.com/nvaldebenito/storefront/internal/cart/app"
	catalogdomain "github.com/nvaldebenito/storefront/internal/catalog/domain"
	sessiondomain "github.com/nvaldebenito/storefront/internal/session/domain"
)

func formatPrice(amount int64) string {
	return fmt.Sprintf("$%d", amount)
}

func renderProducts(products []catalogdomain.Product) {
	fmt.Println(color.CyanString("Products"))
	fmt.Println(strings.Repeat("─", 60))

	for _, p := range products {
		status := ""
		if p.Stock == 0 || p.Status == "unavailable" {
			status = " " + color.RedString("[out of stock]")
		}
		fmt.Printf("%-12s %-30s %10s%s\n", p.ID, truncate(p.Name, 30), formatPrice(p.Price), status)
	}
}

func renderCart(store *cartapp.Store) {
	state := store.State()
	if len(state.Items) == 0 {
		fmt.Println("Cart is empty.")
		return
	}

	fmt.Println(color.CyanString("Cart"))
	fmt.Println(strings.Repeat("─", 60))

	for _, it := range state.Items {
		fmt.Printf("%-12s %-28s x%-4d %10s\n", it.ProductID, truncate(it.Name, 28), it.Quantity, formatPrice(it.UnitPrice*int64(it.Quantity)))
	}

	fmt.Println(strings.Repeat("─", 60))
	fmt.Printf("%d items, total %s\n", store.TotalItems(), color.GreenString(formatPrice(store.TotalPrice())))
}

func renderUser(u sessiondomain.User) {
	fmt.Printf("%s %s <%s>\n", u.FirstName, u.LastName, u.Email)
	if u.Role != "" {
		fmt.Printf("Role:  %s\n", u.Role)
	}
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-1] + "…"
}

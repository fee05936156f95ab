package app

import (
	"context"

	"github.com/nvaldebenito/storefront/internal/cart/domain"
)

// StockDecision is the availability verdict for one product and requested
// quantity.
type StockDecision struct {
	CanAdd         bool
	AvailableStock int
	Message        string
}

// StockValidator is consulted before any add or quantity update. A returned
// error is a transport failure and the operation fails closed.
type StockValidator interface {
	Validate(ctx context.Context, productID string, quantity int) (StockDecision, error)
}

// ProductReader resolves the catalog data needed to build a line item.
type ProductReader interface {
	GetProduct(ctx context.Context, productID string) (domain.ProductInfo, error)
}

// CartSyncer mirrors local cart mutations to the server.
type CartSyncer interface {
	Fetch(ctx context.Context) ([]domain.LineItem, error)
	AddItem(ctx context.Context, productID string, quantity int) error
	SetItemQuantity(ctx context.Context, productID string, quantity int) error
	RemoveItem(ctx context.Context, productID string) error
	Clear(ctx context.Context) error
	Replace(ctx context.Context, items []domain.LineItem) error
}

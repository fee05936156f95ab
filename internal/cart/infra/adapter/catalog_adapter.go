package adapter

import (
	"context"

	cartapp "github.com/nvaldebenito/storefront/internal/cart/app"
	cartdomain "github.com/nvaldebenito/storefront/internal/cart/domain"
	catalogapp "github.com/nvaldebenito/storefront/internal/catalog/app"
)

// CatalogStockValidator exposes the catalog service as the cart's stock
// validation collaborator.
type CatalogStockValidator struct {
	svc *catalogapp.Service
}

func NewCatalogStockValidator(svc *catalogapp.Service) *CatalogStockValidator {
	return &CatalogStockValidator{svc: svc}
}

func (v *CatalogStockValidator) Validate(ctx context.Context, productID string, quantity int) (cartapp.StockDecision, error) {
	canAdd, available, msg, err := v.svc.ValidateAdd(ctx, productID, quantity)
	if err != nil {
		return cartapp.StockDecision{}, err
	}

	return cartapp.StockDecision{
		CanAdd:         canAdd,
		AvailableStock: available,
		Message:        msg,
	}, nil
}

// CatalogProductReader resolves product details for new line items.
type CatalogProductReader struct {
	svc *catalogapp.Service
}

func NewCatalogProductReader(svc *catalogapp.Service) *CatalogProductReader {
	return &CatalogProductReader{svc: svc}
}

func (r *CatalogProductReader) GetProduct(ctx context.Context, productID string) (cartdomain.ProductInfo, error) {
	p, err := r.svc.GetProduct(ctx, productID)
	if err != nil {
		return cartdomain.ProductInfo{}, err
	}

	return cartdomain.ProductInfo{
		Name:     p.Name,
		Price:    p.Price,
		Stock:    p.Stock,
		ImageRef: p.ImageRef,
	}, nil
}

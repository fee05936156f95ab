package app

import (
	"context"

	"github.com/nvaldebenito/storefront/internal/catalog/domain"
)

type ProductRepo interface {
	Get(ctx context.Context, id string) (domain.Product, error)
	List(ctx context.Context, filter domain.ListFilter) ([]domain.Product, error)
	Stock(ctx context.Context, id string) (domain.StockInfo, error)
}

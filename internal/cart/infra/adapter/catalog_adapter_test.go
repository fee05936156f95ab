package adapter

import (
	"context"
	"testing"

	catalogapp "github.com/nvaldebenito/storefront/internal/catalog/app"
	catalogdomain "github.com/nvaldebenito/storefront/internal/catalog/domain"
)

type fakeRepo struct {
	product catalogdomain.Product
	stock   catalogdomain.StockInfo
}

func (f *fakeRepo) Get(ctx context.Context, id string) (catalogdomain.Product, error) {
	return f.product, nil
}

func (f *fakeRepo) List(ctx context.Context, filter catalogdomain.ListFilter) ([]catalogdomain.Product, error) {
	return nil, nil
}

func (f *fakeRepo) Stock(ctx context.Context, id string) (catalogdomain.StockInfo, error) {
	return f.stock, nil
}

func TestStockValidatorMapping(t *testing.T) {
	svc := catalogapp.NewService(&fakeRepo{stock: catalogdomain.StockInfo{ProductID: "P1", Stock: 4, IsAvailable: true}})
	v := NewCatalogStockValidator(svc)

	dec, err := v.Validate(context.Background(), "P1", 9)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if dec.CanAdd || dec.AvailableStock != 4 {
		t.Fatalf("unexpected decision: %+v", dec)
	}
	if dec.Message != "insufficient stock, available: 4" {
		t.Fatalf("unexpected message %q", dec.Message)
	}
}

func TestProductReaderMapping(t *testing.T) {
	svc := catalogapp.NewService(&fakeRepo{product: catalogdomain.Product{
		ID: "P1", Name: "Keyboard", Price: 1000, Stock: 10, ImageRef: "kb.png",
	}})
	r := NewCatalogProductReader(svc)

	info, err := r.GetProduct(context.Background(), "P1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if info.Name != "Keyboard" || info.Price != 1000 || info.Stock != 10 || info.ImageRef != "kb.png" {
		t.Fatalf("unexpected info: %+v", info)
	}
}

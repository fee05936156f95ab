package app

import (
	"testing"

	"github.com/google/uuid"
	"github.com/nvaldebenito/storefront/internal/cart/domain"
	"golang.org/x/sync/errgroup"
)

func TestStore_ConcurrentAddIncrement(t *testing.T) {
	store := NewStore()
	productID := uuid.NewString()
	info := domain.ProductInfo{Name: "Keyboard", Price: 1000, Stock: 1000}

	const N = 100
	var g errgroup.Group
	for i := 0; i < N; i++ {
		g.Go(func() error {
			store.Dispatch(domain.AddToCart{ProductID: productID, Quantity: 1, Product: info})
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		t.Fatalf("concurrent dispatch failed: %v", err)
	}

	state := store.State()
	if len(state.Items) != 1 {
		t.Fatalf("expected exactly 1 line item, got %d", len(state.Items))
	}
	if state.Items[0].Quantity != N {
		t.Fatalf("expected quantity=%d, got=%d", N, state.Items[0].Quantity)
	}
}

func TestStore_SnapshotIsolation(t *testing.T) {
	store := NewStore()
	store.Dispatch(domain.AddToCart{ProductID: "P1", Quantity: 2, Product: domain.ProductInfo{Name: "Keyboard", Price: 1000, Stock: 10}})

	snap := store.State()
	snap.Items[0].Quantity = 99

	if got := store.State().Items[0].Quantity; got != 2 {
		t.Fatalf("store mutated through snapshot: quantity=%d", got)
	}
}

func TestStore_Totals(t *testing.T) {
	store := NewStore()
	store.Dispatch(domain.AddToCart{ProductID: "P1", Quantity: 2, Product: domain.ProductInfo{Name: "Keyboard", Price: 1000, Stock: 10}})
	store.Dispatch(domain.AddToCart{ProductID: "P2", Quantity: 1, Product: domain.ProductInfo{Name: "Mouse", Price: 500, Stock: 5}})

	if store.TotalItems() != 3 {
		t.Fatalf("expected 3 items, got %d", store.TotalItems())
	}
	if store.TotalPrice() != 2500 {
		t.Fatalf("expected total 2500, got %d", store.TotalPrice())
	}
}

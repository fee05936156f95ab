package rest

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/nvaldebenito/storefront/internal/catalog/domain"
	"github.com/nvaldebenito/storefront/pkg/restclient"
)

func newClient(t *testing.T, handler http.HandlerFunc) (*ProductClient, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	rc := restclient.New(restclient.Options{BaseURL: srv.URL, Timeout: 2 * time.Second})
	return NewProductClient(rc), srv
}

func TestListQuerySerialization(t *testing.T) {
	var got url.Values
	c, _ := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		got = r.URL.Query()
		w.Write([]byte(`{"success":true,"message":"ok","data":[]}`))
	})

	_, err := c.List(context.Background(), domain.ListFilter{
		Search:     "keyboard",
		Categories: []string{"peripherals", "gaming"},
		Brands:     []string{"logi"},
		Condition:  "new",
		MinPrice:   1000,
		MaxPrice:   90000,
		OrderBy:    "price",
		Page:       2,
		PageSize:   8,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := map[string]string{
		"search":     "keyboard",
		"categories": "peripherals,gaming",
		"brands":     "logi",
		"status":     "new",
		"minPrice":   "1000",
		"maxPrice":   "90000",
		"orderBy":    "price",
		"pageNumber": "2",
		"pageSize":   "8",
	}
	for k, v := range want {
		if got.Get(k) != v {
			t.Fatalf("param %s: expected %q, got %q", k, v, got.Get(k))
		}
	}
}

func TestListOmitsUnsetFilters(t *testing.T) {
	var got url.Values
	c, _ := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		got = r.URL.Query()
		w.Write([]byte(`{"success":true,"message":"ok","data":[]}`))
	})

	if _, err := c.List(context.Background(), domain.ListFilter{Condition: "all", Page: 1, PageSize: 8}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, k := range []string{"search", "categories", "brands", "status", "minPrice", "maxPrice", "orderBy"} {
		if got.Has(k) {
			t.Fatalf("expected %s omitted, got %q", k, got.Get(k))
		}
	}
}

func TestGetProduct(t *testing.T) {
	c, _ := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/products/P1" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		w.Write([]byte(`{"success":true,"message":"ok","data":{"id":"P1","name":"Keyboard","price":1000,"stock":10,"image":"kb.png"}}`))
	})

	p, err := c.Get(context.Background(), "P1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.ID != "P1" || p.Name != "Keyboard" || p.Price != 1000 || p.Stock != 10 || p.ImageRef != "kb.png" {
		t.Fatalf("unexpected product: %+v", p)
	}
}

func TestStock(t *testing.T) {
	c, _ := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/products/P2/stock" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		w.Write([]byte(`{"success":true,"message":"ok","data":{"productId":"P2","stock":0,"isAvailable":false}}`))
	})

	info, err := c.Stock(context.Background(), "P2")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if info.ProductID != "P2" || info.Stock != 0 || info.IsAvailable {
		t.Fatalf("unexpected stock info: %+v", info)
	}
}

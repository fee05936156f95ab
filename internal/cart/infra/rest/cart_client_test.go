package rest

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/nvaldebenito/storefront/internal/cart/domain"
	"github.com/nvaldebenito/storefront/pkg/restclient"
)

type recordedRequest struct {
	method string
	path   string
	body   map[string]any
}

func newClient(t *testing.T, rec *recordedRequest, response string) *CartClient {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec.method = r.Method
		rec.path = r.URL.Path
		if r.Body != nil {
			json.NewDecoder(r.Body).Decode(&rec.body)
		}
		w.Write([]byte(response))
	}))
	t.Cleanup(srv.Close)
	return NewCartClient(restclient.New(restclient.Options{BaseURL: srv.URL, Timeout: 2 * time.Second}))
}

const okEnvelope = `{"success":true,"message":"ok","data":null}`

func TestFetch(t *testing.T) {
	rec := &recordedRequest{}
	c := newClient(t, rec, `{"success":true,"message":"ok","data":{"cart":[{"id":"l1","productId":"P1","name":"Keyboard","price":1000,"quantity":2,"maxStock":10,"image":"kb.png"}],"totalItems":2,"totalAmount":2000}}`)

	items, err := c.Fetch(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.method != http.MethodGet || rec.path != "/cart" {
		t.Fatalf("unexpected request %s %s", rec.method, rec.path)
	}
	if len(items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(items))
	}
	it := items[0]
	if it.ID != "l1" || it.ProductID != "P1" || it.UnitPrice != 1000 || it.Quantity != 2 || it.MaxStock != 10 || it.ImageRef != "kb.png" {
		t.Fatalf("unexpected item: %+v", it)
	}
}

func TestAddItem(t *testing.T) {
	rec := &recordedRequest{}
	c := newClient(t, rec, okEnvelope)

	if err := c.AddItem(context.Background(), "P1", 3); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.method != http.MethodPost || rec.path != "/cart/add" {
		t.Fatalf("unexpected request %s %s", rec.method, rec.path)
	}
	if rec.body["productId"] != "P1" || rec.body["quantity"] != float64(3) {
		t.Fatalf("unexpected body: %+v", rec.body)
	}
}

func TestSetItemQuantity(t *testing.T) {
	rec := &recordedRequest{}
	c := newClient(t, rec, okEnvelope)

	if err := c.SetItemQuantity(context.Background(), "P1", 5); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.method != http.MethodPut || rec.path != "/cart/update/P1" {
		t.Fatalf("unexpected request %s %s", rec.method, rec.path)
	}
	if rec.body["quantity"] != float64(5) {
		t.Fatalf("unexpected body: %+v", rec.body)
	}
}

func TestRemoveItem(t *testing.T) {
	rec := &recordedRequest{}
	c := newClient(t, rec, okEnvelope)

	if err := c.RemoveItem(context.Background(), "P1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.method != http.MethodDelete || rec.path != "/cart/remove/P1" {
		t.Fatalf("unexpected request %s %s", rec.method, rec.path)
	}
}

func TestClear(t *testing.T) {
	rec := &recordedRequest{}
	c := newClient(t, rec, okEnvelope)

	if err := c.Clear(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.method != http.MethodDelete || rec.path != "/cart/clear" {
		t.Fatalf("unexpected request %s %s", rec.method, rec.path)
	}
}

func TestReplace(t *testing.T) {
	rec := &recordedRequest{}
	c := newClient(t, rec, okEnvelope)

	items := []domain.LineItem{
		{ID: "l1", ProductID: "P1", Name: "Keyboard", UnitPrice: 1000, Quantity: 2, MaxStock: 10},
	}
	if err := c.Replace(context.Background(), items); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.method != http.MethodPost || rec.path != "/cart/sync" {
		t.Fatalf("unexpected request %s %s", rec.method, rec.path)
	}
	sent, ok := rec.body["items"].([]any)
	if !ok || len(sent) != 1 {
		t.Fatalf("unexpected body: %+v", rec.body)
	}
	first := sent[0].(map[string]any)
	if first["productId"] != "P1" || first["quantity"] != float64(2) {
		t.Fatalf("unexpected item payload: %+v", first)
	}
}

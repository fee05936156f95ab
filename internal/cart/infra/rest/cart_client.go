package rest

import (
	"context"
	"fmt"
	"net/url"

	"github.com/nvaldebenito/storefront/internal/cart/domain"
	"github.com/nvaldebenito/storefront/pkg/restclient"
)

// CartClient mirrors local cart mutations to the server. It implements
// app.CartSyncer; every call is best-effort, the operations layer decides
// what a failure means.
type CartClient struct {
	rc *restclient.Client
}

func NewCartClient(rc *restclient.Client) *CartClient {
	return &CartClient{rc: rc}
}

type lineItemDTO struct {
	ID        string `json:"id"`
	ProductID string `json:"productId"`
	Name      string `json:"name"`
	Price     int64  `json:"price"`
	Quantity  int    `json:"quantity"`
	MaxStock  int    `json:"maxStock"`
	Image     string `json:"image,omitempty"`
}

func toDTO(it domain.LineItem) lineItemDTO {
	return lineItemDTO{
		ID:        it.ID,
		ProductID: it.ProductID,
		Name:      it.Name,
		Price:     it.UnitPrice,
		Quantity:  it.Quantity,
		MaxStock:  it.MaxStock,
		Image:     it.ImageRef,
	}
}

func (d lineItemDTO) toDomain() domain.LineItem {
	return domain.LineItem{
		ID:        d.ID,
		ProductID: d.ProductID,
		Name:      d.Name,
		UnitPrice: d.Price,
		Quantity:  d.Quantity,
		MaxStock:  d.MaxStock,
		ImageRef:  d.Image,
	}
}

func (c *CartClient) Fetch(ctx context.Context) ([]domain.LineItem, error) {
	var out struct {
		Cart        []lineItemDTO `json:"cart"`
		TotalItems  int           `json:"totalItems"`
		TotalAmount int64         `json:"totalAmount"`
	}
	if err := c.rc.Get(ctx, "/cart", &out); err != nil {
		return nil, fmt.Errorf("fetch cart: %w", err)
	}

	items := make([]domain.LineItem, 0, len(out.Cart))
	for _, dto := range out.Cart {
		items = append(items, dto.toDomain())
	}
	return items, nil
}

func (c *CartClient) AddItem(ctx context.Context, productID string, quantity int) error {
	body := map[string]any{"productId": productID, "quantity": quantity}
	if err := c.rc.Post(ctx, "/cart/add", body, nil); err != nil {
		return fmt.Errorf("add item %s: %w", productID, err)
	}
	return nil
}

func (c *CartClient) SetItemQuantity(ctx context.Context, productID string, quantity int) error {
	body := map[string]any{"quantity": quantity}
	if err := c.rc.Put(ctx, "/cart/update/"+url.PathEscape(productID), body, nil); err != nil {
		return fmt.Errorf("update item %s: %w", productID, err)
	}
	return nil
}

func (c *CartClient) RemoveItem(ctx context.Context, productID string) error {
	if err := c.rc.Delete(ctx, "/cart/remove/"+url.PathEscape(productID), nil); err != nil {
		return fmt.Errorf("remove item %s: %w", productID, err)
	}
	return nil
}

func (c *CartClient) Clear(ctx context.Context) error {
	if err := c.rc.Delete(ctx, "/cart/clear", nil); err != nil {
		return fmt.Errorf("clear cart: %w", err)
	}
	return nil
}

func (c *CartClient) Replace(ctx context.Context, items []domain.LineItem) error {
	dtos := make([]lineItemDTO, 0, len(items))
	for _, it := range items {
		dtos = append(dtos, toDTO(it))
	}
	if err := c.rc.Post(ctx, "/cart/sync", map[string]any{"items": dtos}, nil); err != nil {
		return fmt.Errorf("sync cart: %w", err)
	}
	return nil
}

package rest

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/nvaldebenito/storefront/internal/catalog/domain"
	"github.com/nvaldebenito/storefront/pkg/restclient"
)

// ProductClient reads the remote catalog. It implements app.ProductRepo.
type ProductClient struct {
	rc *restclient.Client
}

func NewProductClient(rc *restclient.Client) *ProductClient {
	return &ProductClient{rc: rc}
}

type productDTO struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Price       int64  `json:"price"`
	Stock       int    `json:"stock"`
	Category    string `json:"category"`
	Brand       string `json:"brand"`
	Status      string `json:"status"`
	Image       string `json:"image"`
}

func (d productDTO) toDomain() domain.Product {
	return domain.Product{
		ID:          d.ID,
		Name:        d.Name,
		Description: d.Description,
		Price:       d.Price,
		Stock:       d.Stock,
		Category:    d.Category,
		Brand:       d.Brand,
		Status:      d.Status,
		ImageRef:    d.Image,
	}
}

func (c *ProductClient) Get(ctx context.Context, id string) (domain.Product, error) {
	var dto productDTO
	if err := c.rc.Get(ctx, "/products/"+url.PathEscape(id), &dto); err != nil {
		return domain.Product{}, fmt.Errorf("get product %s: %w", id, err)
	}
	return dto.toDomain(), nil
}

func (c *ProductClient) List(ctx context.Context, filter domain.ListFilter) ([]domain.Product, error) {
	query := url.Values{}

	if filter.Search != "" {
		query.Set("search", filter.Search)
	}
	// arrays travel comma-joined, the way the backend expects them
	if len(filter.Categories) > 0 {
		query.Set("categories", strings.Join(filter.Categories, ","))
	}
	if len(filter.Brands) > 0 {
		query.Set("brands", strings.Join(filter.Brands, ","))
	}
	if filter.Condition != "" && filter.Condition != "all" {
		query.Set("status", filter.Condition)
	}
	if filter.MinPrice > 0 {
		query.Set("minPrice", strconv.FormatInt(filter.MinPrice, 10))
	}
	if filter.MaxPrice > 0 {
		query.Set("maxPrice", strconv.FormatInt(filter.MaxPrice, 10))
	}
	if filter.OrderBy != "" {
		query.Set("orderBy", filter.OrderBy)
	}
	query.Set("pageNumber", strconv.Itoa(filter.Page))
	query.Set("pageSize", strconv.Itoa(filter.PageSize))

	var dtos []productDTO
	if err := c.rc.Get(ctx, "/products?"+query.Encode(), &dtos); err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}

	products := make([]domain.Product, 0, len(dtos))
	for _, dto := range dtos {
		products = append(products, dto.toDomain())
	}
	return products, nil
}

func (c *ProductClient) Stock(ctx context.Context, id string) (domain.StockInfo, error) {
	var dto struct {
		ProductID   string `json:"productId"`
		Stock       int    `json:"stock"`
		IsAvailable bool   `json:"isAvailable"`
	}
	if err := c.rc.Get(ctx, "/products/"+url.PathEscape(id)+"/stock", &dto); err != nil {
		return domain.StockInfo{}, fmt.Errorf("check stock %s: %w", id, err)
	}
	return domain.StockInfo{
		ProductID:   dto.ProductID,
		Stock:       dto.Stock,
		IsAvailable: dto.IsAvailable,
	}, nil
}

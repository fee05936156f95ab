package app

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/nvaldebenito/storefront/internal/catalog/domain"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("not found")
)

type Service struct {
	repo ProductRepo
}

func NewService(repo ProductRepo) *Service {
	return &Service{
		repo: repo,
	}
}

func (s *Service) GetProduct(ctx context.Context, id string) (domain.Product, error) {
	if strings.TrimSpace(id) == "" {
		return domain.Product{}, ErrInvalidInput
	}
	return s.repo.Get(ctx, id)
}

func (s *Service) ListProducts(ctx context.Context, filter domain.ListFilter) ([]domain.Product, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 8
	}
	if filter.PageSize > 100 {
		filter.PageSize = 100
	}
	return s.repo.List(ctx, filter)
}

func (s *Service) CheckStock(ctx context.Context, id string) (domain.StockInfo, error) {
	if strings.TrimSpace(id) == "" {
		return domain.StockInfo{}, ErrInvalidInput
	}
	return s.repo.Stock(ctx, id)
}

// ValidateAdd decides whether quantity units of a product can enter the
// cart. Transport failures propagate; the cart layer fails closed on them.
func (s *Service) ValidateAdd(ctx context.Context, productID string, quantity int) (bool, int, string, error) {
	info, err := s.CheckStock(ctx, productID)
	if err != nil {
		return false, 0, "", err
	}

	if !info.IsAvailable {
		return false, 0, "product not available", nil
	}

	if quantity > info.Stock {
		return false, info.Stock, fmt.Sprintf("insufficient stock, available: %d", info.Stock), nil
	}

	return true, info.Stock, "product available", nil
}

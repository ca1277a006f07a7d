package inventory

import (
	"context"
	"errors"
	"fmt"
)

// Service wraps the stock repository with the inventory context's rules:
// quantities never go negative, and availability for a missing record is
// simply false, not an error.
type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Get(ctx context.Context, productID string) (StockRecord, error) {
	return s.repo.Get(ctx, productID)
}

// QuantityFor returns the stock quantity for a product, zero when no record
// exists.
func (s *Service) QuantityFor(ctx context.Context, productID string) (int, error) {
	rec, err := s.repo.Get(ctx, productID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return 0, nil
		}
		return 0, err
	}
	return rec.Quantity, nil
}

func (s *Service) IsAvailable(ctx context.Context, productID string, quantity int) (bool, error) {
	rec, err := s.repo.Get(ctx, productID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return rec.Quantity >= quantity, nil
}

func (s *Service) SetQuantity(ctx context.Context, productID string, quantity int) error {
	if quantity < 0 {
		return fmt.Errorf("quantity must not be negative, got %d", quantity)
	}
	return s.repo.SetQuantity(ctx, productID, quantity)
}

func (s *Service) CreateStockRecord(ctx context.Context, productID string) error {
	return s.repo.CreateIfAbsent(ctx, productID, 0)
}

func (s *Service) RemoveByProductID(ctx context.Context, productID string) error {
	return s.repo.DeleteByProductID(ctx, productID)
}

package catalog

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pwalczak/storefront/internal/bus"
	"github.com/pwalczak/storefront/internal/contracts"
)

// Service owns the product lifecycle. Domain events are published only after
// the corresponding storage write has completed, so reactors never observe
// state that was rolled back.
type Service struct {
	repo   Repository
	events *bus.EventBus
}

func NewService(repo Repository, events *bus.EventBus) *Service {
	return &Service{repo: repo, events: events}
}

func (s *Service) Get(ctx context.Context, id string) (Product, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]Product, error) {
	return s.repo.List(ctx)
}

func (s *Service) Create(ctx context.Context, p *Product) error {
	price, err := decimal.NewFromString(p.Price)
	if err != nil {
		return fmt.Errorf("invalid price %q: %w", p.Price, err)
	}
	p.Price = price.StringFixed(2)
	if p.ID == "" {
		p.ID = uuid.NewString()
	}

	if err := s.repo.Create(ctx, *p); err != nil {
		return fmt.Errorf("create product: %w", err)
	}

	s.events.Dispatch(ctx, contracts.ProductCreated{ProductID: p.ID, Name: p.Name})
	return nil
}

func (s *Service) Update(ctx context.Context, p Product) error {
	price, err := decimal.NewFromString(p.Price)
	if err != nil {
		return fmt.Errorf("invalid price %q: %w", p.Price, err)
	}
	p.Price = price.StringFixed(2)
	return s.repo.Update(ctx, p)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.events.Dispatch(ctx, contracts.ProductDeleted{ProductID: id})
	return nil
}

func (s *Service) ListCategories(ctx context.Context) ([]Category, error) {
	return s.repo.ListCategories(ctx)
}

func (s *Service) CreateCategory(ctx context.Context, c *Category) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return s.repo.CreateCategory(ctx, *c)
}

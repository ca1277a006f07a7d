package cart

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/pwalczak/storefront/internal/contracts"
)

// Service is the stock-consistency workflow over carts. Every mutation
// validates against the catalog and live inventory before touching cart
// state, under a per-session lock so the accept/reject decision is atomic
// with its application.
type Service struct {
	repo     Repository
	products ProductProvider
	stock    StockChecker

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewService(repo Repository, products ProductProvider, stock StockChecker) *Service {
	return &Service{
		repo:     repo,
		products: products,
		stock:    stock,
		locks:    make(map[string]*sync.Mutex),
	}
}

// lock serializes mutations for one session's cart. The returned func must be
// called on every exit path, including failures.
func (s *Service) lock(sessionID string) func() {
	s.mu.Lock()
	l, ok := s.locks[sessionID]
	if !ok {
		l = &sync.Mutex{}
		s.locks[sessionID] = l
	}
	s.mu.Unlock()

	l.Lock()
	return l.Unlock
}

// Find returns the session's cart, nil when none exists yet.
func (s *Service) Find(ctx context.Context, sessionID string) (*Cart, error) {
	return s.repo.FindBySessionID(ctx, sessionID)
}

// AddItem adds quantity units of a product to the session's cart, creating
// the cart on first use. The availability check runs against the new total
// (existing quantity plus requested), and no cart state is written when the
// check fails. The line's price is fixed at first add.
func (s *Service) AddItem(ctx context.Context, sessionID, productID string, quantity int) (*Cart, error) {
	if quantity < 1 {
		quantity = 1
	}

	unlock := s.lock(sessionID)
	defer unlock()

	exists, err := s.products.ProductExists(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("check product: %w", err)
	}
	if !exists {
		return nil, &contracts.ProductNotFoundError{ProductID: productID}
	}

	c, err := s.repo.FindBySessionID(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	target := quantity
	if c != nil {
		target += c.Quantity(productID)
	}

	available, err := s.stock.IsAvailable(ctx, productID, target)
	if err != nil {
		return nil, fmt.Errorf("check stock: %w", err)
	}
	if !available {
		return nil, &InsufficientStockError{ProductID: productID, Requested: target}
	}

	if c == nil {
		c = &Cart{ID: uuid.NewString(), SessionID: sessionID, CreatedAt: time.Now().UTC()}
		if err := s.repo.Create(ctx, c); err != nil {
			return nil, fmt.Errorf("create cart: %w", err)
		}
	}

	line, ok := c.Line(productID)
	if ok {
		line.Quantity = target
	} else {
		price, err := s.products.Price(ctx, productID)
		if err != nil {
			return nil, err
		}
		line = Line{ProductID: productID, Quantity: target, PriceAtAdd: price}
	}

	if err := s.repo.UpsertLine(ctx, c.ID, line); err != nil {
		return nil, fmt.Errorf("save line: %w", err)
	}
	c.setLine(line)
	return c, nil
}

// UpdateItemQuantity sets the absolute quantity for a product's line. A
// quantity of zero or less removes the line; an absent line is a no-op.
func (s *Service) UpdateItemQuantity(ctx context.Context, sessionID, productID string, quantity int) (*Cart, error) {
	if quantity <= 0 {
		return s.RemoveItem(ctx, sessionID, productID)
	}

	unlock := s.lock(sessionID)
	defer unlock()

	c, err := s.repo.FindBySessionID(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, nil
	}

	line, ok := c.Line(productID)
	if !ok {
		return c, nil
	}

	available, err := s.stock.IsAvailable(ctx, productID, quantity)
	if err != nil {
		return nil, fmt.Errorf("check stock: %w", err)
	}
	if !available {
		return nil, &InsufficientStockError{ProductID: productID, Requested: quantity}
	}

	line.Quantity = quantity
	if err := s.repo.UpsertLine(ctx, c.ID, line); err != nil {
		return nil, fmt.Errorf("save line: %w", err)
	}
	c.setLine(line)
	return c, nil
}

// RemoveItem deletes the product's line; absent cart or line is a no-op.
func (s *Service) RemoveItem(ctx context.Context, sessionID, productID string) (*Cart, error) {
	unlock := s.lock(sessionID)
	defer unlock()

	c, err := s.repo.FindBySessionID(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, nil
	}
	if _, ok := c.Line(productID); !ok {
		return c, nil
	}

	if err := s.repo.DeleteLine(ctx, c.ID, productID); err != nil {
		return nil, fmt.Errorf("delete line: %w", err)
	}
	c.dropLine(productID)
	return c, nil
}

// Clear removes every line from the session's cart. Never fails on an empty
// or missing cart.
func (s *Service) Clear(ctx context.Context, sessionID string) error {
	unlock := s.lock(sessionID)
	defer unlock()

	c, err := s.repo.FindBySessionID(ctx, sessionID)
	if err != nil {
		return err
	}
	if c == nil {
		return nil
	}
	return s.repo.ClearLines(ctx, c.ID)
}

// ProductNames resolves the names for every product in the cart through the
// catalog port, in a single batched lookup.
func (s *Service) ProductNames(ctx context.Context, c *Cart) (map[string]string, error) {
	if c == nil || len(c.Lines) == 0 {
		return map[string]string{}, nil
	}
	ids := make([]string, 0, len(c.Lines))
	for _, l := range c.Lines {
		ids = append(ids, l.ProductID)
	}
	return s.products.ProductNames(ctx, ids)
}

// RemoveItemsByProductID bulk-removes the product's line from every cart in
// storage. Removing an already-absent line succeeds.
func (s *Service) RemoveItemsByProductID(ctx context.Context, productID string) error {
	return s.repo.DeleteLinesByProduct(ctx, productID)
}

func (c *Cart) setLine(line Line) {
	for i := range c.Lines {
		if c.Lines[i].ProductID == line.ProductID {
			c.Lines[i] = line
			return
		}
	}
	c.Lines = append(c.Lines, line)
}

func (c *Cart) dropLine(productID string) {
	for i := range c.Lines {
		if c.Lines[i].ProductID == productID {
			c.Lines = append(c.Lines[:i], c.Lines[i+1:]...)
			return
		}
	}
}

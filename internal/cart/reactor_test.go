package cart

import (
	"context"
	"errors"
	"io"
	"log"
	"testing"

	"github.com/pwalczak/storefront/internal/bus"
	"github.com/pwalczak/storefront/internal/contracts"
	"github.com/pwalczak/storefront/internal/inventory"
)

type fakeStockRepo struct {
	records   map[string]int
	deleteErr error
}

func (f *fakeStockRepo) Get(ctx context.Context, productID string) (inventory.StockRecord, error) {
	q, ok := f.records[productID]
	if !ok {
		return inventory.StockRecord{}, inventory.ErrNotFound
	}
	return inventory.StockRecord{ProductID: productID, Quantity: q}, nil
}

func (f *fakeStockRepo) CreateIfAbsent(ctx context.Context, productID string, quantity int) error {
	if _, ok := f.records[productID]; !ok {
		f.records[productID] = quantity
	}
	return nil
}

func (f *fakeStockRepo) SetQuantity(ctx context.Context, productID string, quantity int) error {
	f.records[productID] = quantity
	return nil
}

func (f *fakeStockRepo) DeleteByProductID(ctx context.Context, productID string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	delete(f.records, productID)
	return nil
}

// wires both contexts' reactors onto one event bus, the way main does.
func newReactorFixture(t *testing.T, stockRepo *fakeStockRepo) (*bus.EventBus, *Service, *fakeRepository) {
	t.Helper()

	registry := bus.NewRegistry()
	events := bus.NewEventBus(registry, log.New(io.Discard, "", 0))

	stockSvc := inventory.NewService(stockRepo)
	inventory.NewReactor(stockSvc).Register(registry)

	cartRepo := newFakeRepository()
	cartSvc := NewService(
		cartRepo,
		&fakeProvider{products: map[string]fakeProduct{
			"p7": {name: "Widget", price: "10.00"},
		}},
		&fakeStock{levels: map[string]int{"p7": 10}},
	)
	NewReactor(cartSvc).Register(registry)

	return events, cartSvc, cartRepo
}

func TestProductDeletedCleansCartAndStock(t *testing.T) {
	ctx := context.Background()
	stockRepo := &fakeStockRepo{records: map[string]int{"p7": 10}}
	events, cartSvc, cartRepo := newReactorFixture(t, stockRepo)

	if _, err := cartSvc.AddItem(ctx, "sess-a", "p7", 2); err != nil {
		t.Fatalf("seed cart: %v", err)
	}

	report := events.Dispatch(ctx, contracts.ProductDeleted{ProductID: "p7"})
	if err := report.Err(); err != nil {
		t.Fatalf("dispatch: %v", err)
	}

	c, _ := cartRepo.FindBySessionID(ctx, "sess-a")
	if c.Quantity("p7") != 0 {
		t.Fatalf("cart line survived product deletion")
	}
	if _, ok := stockRepo.records["p7"]; ok {
		t.Fatalf("stock record survived product deletion")
	}
}

func TestProductDeletedAttemptsBothCleanups(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("inventory storage down")
	stockRepo := &fakeStockRepo{records: map[string]int{"p7": 10}, deleteErr: boom}
	events, cartSvc, cartRepo := newReactorFixture(t, stockRepo)

	if _, err := cartSvc.AddItem(ctx, "sess-a", "p7", 2); err != nil {
		t.Fatalf("seed cart: %v", err)
	}

	report := events.Dispatch(ctx, contracts.ProductDeleted{ProductID: "p7"})
	if !errors.Is(report.Err(), boom) {
		t.Fatalf("expected inventory failure in report, got %v", report.Err())
	}

	// The cart cleanup still ran despite the inventory failure.
	c, _ := cartRepo.FindBySessionID(ctx, "sess-a")
	if c.Quantity("p7") != 0 {
		t.Fatalf("cart cleanup blocked by inventory failure")
	}
}

func TestProductDeletedIsIdempotent(t *testing.T) {
	ctx := context.Background()
	stockRepo := &fakeStockRepo{records: map[string]int{"p7": 10}}
	events, cartSvc, cartRepo := newReactorFixture(t, stockRepo)

	if _, err := cartSvc.AddItem(ctx, "sess-a", "p7", 2); err != nil {
		t.Fatalf("seed cart: %v", err)
	}

	for i := 0; i < 2; i++ {
		if err := events.Dispatch(ctx, contracts.ProductDeleted{ProductID: "p7"}).Err(); err != nil {
			t.Fatalf("dispatch #%d: %v", i+1, err)
		}
	}

	c, _ := cartRepo.FindBySessionID(ctx, "sess-a")
	if c.Quantity("p7") != 0 {
		t.Fatalf("line present after duplicate deletion events")
	}
}

func TestProductCreatedSeedsZeroStock(t *testing.T) {
	ctx := context.Background()
	stockRepo := &fakeStockRepo{records: map[string]int{}}
	events, _, _ := newReactorFixture(t, stockRepo)

	if err := events.Dispatch(ctx, contracts.ProductCreated{ProductID: "p9", Name: "X"}).Err(); err != nil {
		t.Fatalf("dispatch: %v", err)
	}
	if q, ok := stockRepo.records["p9"]; !ok || q != 0 {
		t.Fatalf("expected zero-quantity record, got %v (present=%v)", q, ok)
	}

	// Duplicate delivery leaves any later adjustment untouched.
	stockRepo.records["p9"] = 4
	if err := events.Dispatch(ctx, contracts.ProductCreated{ProductID: "p9", Name: "X"}).Err(); err != nil {
		t.Fatalf("duplicate dispatch: %v", err)
	}
	if stockRepo.records["p9"] != 4 {
		t.Fatalf("duplicate ProductCreated reset quantity to %d", stockRepo.records["p9"])
	}
}

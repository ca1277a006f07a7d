package catalog

import (
	"context"
	"errors"
	"io"
	"log"
	"testing"

	"github.com/pwalczak/storefront/internal/bus"
	"github.com/pwalczak/storefront/internal/contracts"
)

type fakeRepository struct {
	products  map[string]Product
	createErr error
	deleteErr error
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{products: map[string]Product{}}
}

func (f *fakeRepository) Get(ctx context.Context, id string) (Product, error) {
	p, ok := f.products[id]
	if !ok {
		return Product{}, ErrNotFound
	}
	return p, nil
}

func (f *fakeRepository) GetByIDs(ctx context.Context, ids []string) ([]Product, error) {
	var out []Product
	for _, id := range ids {
		if p, ok := f.products[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeRepository) List(ctx context.Context) ([]Product, error) {
	var out []Product
	for _, p := range f.products {
		out = append(out, p)
	}
	return out, nil
}

func (f *fakeRepository) Exists(ctx context.Context, id string) (bool, error) {
	_, ok := f.products[id]
	return ok, nil
}

func (f *fakeRepository) Create(ctx context.Context, p Product) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.products[p.ID] = p
	return nil
}

func (f *fakeRepository) Update(ctx context.Context, p Product) error {
	if _, ok := f.products[p.ID]; !ok {
		return ErrNotFound
	}
	f.products[p.ID] = p
	return nil
}

func (f *fakeRepository) Delete(ctx context.Context, id string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	if _, ok := f.products[id]; !ok {
		return ErrNotFound
	}
	delete(f.products, id)
	return nil
}

func (f *fakeRepository) ListCategories(ctx context.Context) ([]Category, error) {
	return nil, nil
}

func (f *fakeRepository) CreateCategory(ctx context.Context, c Category) error {
	return nil
}

// recorder subscribes to both product events and keeps what it saw.
type recorder struct {
	events []bus.Event
}

func (r *recorder) record(ctx context.Context, e bus.Event) error {
	r.events = append(r.events, e)
	return nil
}

func newServiceFixture(t *testing.T) (*Service, *fakeRepository, *recorder) {
	t.Helper()

	registry := bus.NewRegistry()
	events := bus.NewEventBus(registry, log.New(io.Discard, "", 0))

	rec := &recorder{}
	registry.RegisterEvent(contracts.EventTypeProductCreated, rec.record)
	registry.RegisterEvent(contracts.EventTypeProductDeleted, rec.record)

	repo := newFakeRepository()
	return NewService(repo, events), repo, rec
}

func TestCreatePublishesProductCreated(t *testing.T) {
	svc, repo, rec := newServiceFixture(t)

	p := Product{Name: "Widget", Price: "9.9"}
	if err := svc.Create(context.Background(), &p); err != nil {
		t.Fatalf("create: %v", err)
	}
	if p.ID == "" {
		t.Fatalf("expected generated id")
	}
	if repo.products[p.ID].Price != "9.90" {
		t.Fatalf("price not normalized, got %q", repo.products[p.ID].Price)
	}

	if len(rec.events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(rec.events))
	}
	created, ok := rec.events[0].(contracts.ProductCreated)
	if !ok {
		t.Fatalf("unexpected event %T", rec.events[0])
	}
	if created.ProductID != p.ID || created.Name != "Widget" {
		t.Fatalf("unexpected payload: %+v", created)
	}
}

func TestCreateRejectsMalformedPrice(t *testing.T) {
	svc, _, rec := newServiceFixture(t)

	p := Product{Name: "Widget", Price: "free"}
	if err := svc.Create(context.Background(), &p); err == nil {
		t.Fatalf("expected error for malformed price")
	}
	if len(rec.events) != 0 {
		t.Fatalf("event published for rejected product")
	}
}

func TestCreateStorageFailurePublishesNothing(t *testing.T) {
	svc, repo, rec := newServiceFixture(t)
	repo.createErr = errors.New("storage down")

	p := Product{Name: "Widget", Price: "9.99"}
	if err := svc.Create(context.Background(), &p); err == nil {
		t.Fatalf("expected storage error")
	}
	if len(rec.events) != 0 {
		t.Fatalf("event published for failed write")
	}
}

func TestDeletePublishesProductDeleted(t *testing.T) {
	svc, repo, rec := newServiceFixture(t)
	repo.products["p1"] = Product{ID: "p1", Name: "Widget", Price: "9.99"}

	if err := svc.Delete(context.Background(), "p1"); err != nil {
		t.Fatalf("delete: %v", err)
	}

	if len(rec.events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(rec.events))
	}
	deleted, ok := rec.events[0].(contracts.ProductDeleted)
	if !ok || deleted.ProductID != "p1" {
		t.Fatalf("unexpected event: %#v", rec.events[0])
	}
}

func TestDeleteMissingPublishesNothing(t *testing.T) {
	svc, _, rec := newServiceFixture(t)

	if err := svc.Delete(context.Background(), "ghost"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if len(rec.events) != 0 {
		t.Fatalf("event published for failed delete")
	}
}

func TestUpdateNormalizesPrice(t *testing.T) {
	svc, repo, _ := newServiceFixture(t)
	repo.products["p1"] = Product{ID: "p1", Name: "Widget", Price: "9.99"}

	if err := svc.Update(context.Background(), Product{ID: "p1", Name: "Widget", Price: "12.5"}); err != nil {
		t.Fatalf("update: %v", err)
	}
	if got := repo.products["p1"].Price; got != "12.50" {
		t.Fatalf("price = %q, want 12.50", got)
	}
}

package cart

import (
	"context"
	"errors"
	"io"
	"log"
	"testing"

	"storefront/internal/domain"
	"storefront/internal/notify"
	"storefront/internal/statestore"
)

func testStore(t *testing.T) (*Store, statestore.Repository, *notify.Bus) {
	t.Helper()
	repo := statestore.NewMemory()
	bus := notify.New(nil)
	logger := log.New(io.Discard, "", 0)
	return NewStore(repo, bus, logger), repo, bus
}

func product(id string, price float64) domain.Product {
	return domain.Product{
		ID:     id,
		Name:   "Product " + id,
		Price:  price,
		Images: []string{"https://img.example/" + id + ".jpg"},
	}
}

func TestAddMergesSameProduct(t *testing.T) {
	store, _, _ := testStore(t)
	ctx := context.Background()

	store.Add(ctx, product("p1", 500), 2)
	store.Add(ctx, product("p1", 500), 3)

	items := store.Items()
	if len(items) != 1 {
		t.Fatalf("expected one line item, got %d", len(items))
	}
	if items[0].Quantity != 5 {
		t.Fatalf("expected quantity 5, got %d", items[0].Quantity)
	}
}

func TestAddCapturesPriceAndImage(t *testing.T) {
	store, _, _ := testStore(t)
	store.Add(context.Background(), product("p1", 500), 1)

	items := store.Items()
	if items[0].Price != 500 {
		t.Fatalf("expected captured price 500, got %v", items[0].Price)
	}
	if items[0].Image != "https://img.example/p1.jpg" {
		t.Fatalf("unexpected image: %q", items[0].Image)
	}
	if items[0].ProductName != "Product p1" {
		t.Fatalf("unexpected name: %q", items[0].ProductName)
	}
}

func TestAddDefaultsQuantityToOne(t *testing.T) {
	store, _, _ := testStore(t)
	store.Add(context.Background(), product("p1", 100), 0)
	if got := store.ItemCount(); got != 1 {
		t.Fatalf("expected item count 1, got %d", got)
	}
}

func TestUpdateQuantityAbsoluteSet(t *testing.T) {
	store, _, _ := testStore(t)
	ctx := context.Background()
	store.Add(ctx, product("p1", 100), 2)

	store.UpdateQuantity(ctx, "p1", 7)

	if got := store.ItemCount(); got != 7 {
		t.Fatalf("expected quantity 7, got %d", got)
	}
}

func TestUpdateQuantityZeroRemoves(t *testing.T) {
	store, _, _ := testStore(t)
	ctx := context.Background()
	store.Add(ctx, product("p1", 100), 2)
	store.Add(ctx, product("p2", 200), 1)

	store.UpdateQuantity(ctx, "p1", 0)

	items := store.Items()
	if len(items) != 1 || items[0].ProductID != "p2" {
		t.Fatalf("expected only p2 to remain, got %+v", items)
	}
	if got := store.ItemCount(); got != 1 {
		t.Fatalf("expected item count 1, got %d", got)
	}
}

func TestRemoveAbsentIsNoop(t *testing.T) {
	store, _, _ := testStore(t)
	ctx := context.Background()
	store.Add(ctx, product("p1", 100), 2)

	store.Remove(ctx, "does-not-exist")

	items := store.Items()
	if len(items) != 1 || items[0].Quantity != 2 {
		t.Fatalf("cart changed by removing absent id: %+v", items)
	}
}

func TestTotalMatchesIndependentRecompute(t *testing.T) {
	store, _, _ := testStore(t)
	ctx := context.Background()

	store.Add(ctx, product("p1", 500), 2)
	store.Add(ctx, product("p2", 300), 1)
	store.UpdateQuantity(ctx, "p2", 4)
	store.Add(ctx, product("p3", 50), 3)
	store.Remove(ctx, "p3")
	store.Add(ctx, product("p1", 500), 1)

	var want float64
	for _, item := range store.Items() {
		want += item.Price * float64(item.Quantity)
	}
	if got := store.Total(); got != want {
		t.Fatalf("Total() = %v, independent recompute = %v", got, want)
	}
}

func TestEndToEndTotals(t *testing.T) {
	store, _, _ := testStore(t)
	ctx := context.Background()
	store.Add(ctx, product("p1", 500), 2)
	store.Add(ctx, product("p2", 300), 1)

	if got := store.Total(); got != 1300 {
		t.Fatalf("expected total 1300, got %v", got)
	}
	if got := store.ItemCount(); got != 3 {
		t.Fatalf("expected item count 3, got %d", got)
	}
}

func TestClearRemovesPersistedCopy(t *testing.T) {
	store, repo, _ := testStore(t)
	ctx := context.Background()
	store.Add(ctx, product("p1", 500), 2)

	if _, err := repo.Load(ctx, statestore.KeyCart); err != nil {
		t.Fatalf("expected persisted cart before clear: %v", err)
	}

	store.Clear(ctx)

	if got := store.ItemCount(); got != 0 {
		t.Fatalf("expected item count 0 after clear, got %d", got)
	}
	if _, err := repo.Load(ctx, statestore.KeyCart); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected persisted cart removed, got %v", err)
	}
}

func TestPersistsAfterEveryMutation(t *testing.T) {
	store, repo, _ := testStore(t)
	ctx := context.Background()

	store.Add(ctx, product("p1", 100), 1)
	store.UpdateQuantity(ctx, "p1", 5)

	restored := NewStore(repo, notify.New(nil), log.New(io.Discard, "", 0))
	restored.Restore(ctx)
	if got := restored.ItemCount(); got != 5 {
		t.Fatalf("expected restored count 5, got %d", got)
	}
}

func TestAddAcknowledgments(t *testing.T) {
	store, _, bus := testStore(t)
	var messages []string
	if err := bus.OnNotice(func(n notify.Notice) {
		messages = append(messages, n.Message)
	}); err != nil {
		t.Fatalf("subscribe: %v", err)
	}

	ctx := context.Background()
	store.Add(ctx, product("p1", 100), 1)
	store.Add(ctx, product("p1", 100), 1)

	if len(messages) != 2 || messages[0] != "Added to cart!" || messages[1] != "Cart updated!" {
		t.Fatalf("unexpected acknowledgments: %v", messages)
	}
}

func TestRestoreIgnoresCorruptState(t *testing.T) {
	store, repo, _ := testStore(t)
	ctx := context.Background()
	if err := repo.Save(ctx, statestore.KeyCart, []byte("not json")); err != nil {
		t.Fatalf("save: %v", err)
	}

	store.Restore(ctx)

	if got := store.ItemCount(); got != 0 {
		t.Fatalf("expected empty cart after corrupt restore, got %d", got)
	}
}

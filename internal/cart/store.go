// Package cart holds the shopper's line items and their derived aggregates.
package cart

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"sync"

	"storefront/internal/domain"
	"storefront/internal/notify"
	"storefront/internal/statestore"
)

// Store is the cart model: an ordered list of line items keyed by product id,
// persisted after every mutation. All operations are total functions over the
// in-memory list; persistence failures are logged and otherwise ignored.
//
// No stock cap is applied when adding; stock limits are the upstream's
// responsibility at order time.
type Store struct {
	mu     sync.Mutex
	items  []domain.LineItem
	repo   statestore.Repository
	bus    *notify.Bus
	logger *log.Logger
}

func NewStore(repo statestore.Repository, bus *notify.Bus, logger *log.Logger) *Store {
	return &Store{repo: repo, bus: bus, logger: logger}
}

// Restore loads the persisted cart, if any. A missing or unreadable persisted
// cart leaves the store empty.
func (s *Store) Restore(ctx context.Context) {
	data, err := s.repo.Load(ctx, statestore.KeyCart)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			s.logger.Printf("restore cart: %v", err)
		}
		return
	}
	var items []domain.LineItem
	if err := json.Unmarshal(data, &items); err != nil {
		s.logger.Printf("restore cart: decode: %v", err)
		return
	}
	s.mu.Lock()
	s.items = items
	s.mu.Unlock()
}

// Add puts quantity units of product into the cart. If a line item for the
// same product already exists its quantity is incremented; otherwise a new
// line is appended with the product's current price and first image captured.
func (s *Store) Add(ctx context.Context, product domain.Product, quantity int) {
	if quantity < 1 {
		quantity = 1
	}
	s.mu.Lock()
	updated := false
	for i := range s.items {
		if s.items[i].ProductID == product.ID {
			s.items[i].Quantity += quantity
			updated = true
			break
		}
	}
	if !updated {
		s.items = append(s.items, domain.LineItem{
			ProductID:   product.ID,
			ProductName: product.Name,
			Quantity:    quantity,
			Price:       product.Price,
			Image:       product.FirstImage(),
		})
	}
	items := s.snapshot()
	s.mu.Unlock()

	s.persist(ctx, items)
	if updated {
		s.bus.Success("Cart updated!")
	} else {
		s.bus.Success("Added to cart!")
	}
	s.bus.CartChanged(items)
}

// UpdateQuantity sets the line item's quantity to exactly quantity. A value of
// zero or less removes the item instead of storing a non-positive quantity.
func (s *Store) UpdateQuantity(ctx context.Context, productID string, quantity int) {
	if quantity <= 0 {
		s.Remove(ctx, productID)
		return
	}
	s.mu.Lock()
	changed := false
	for i := range s.items {
		if s.items[i].ProductID == productID {
			s.items[i].Quantity = quantity
			changed = true
			break
		}
	}
	items := s.snapshot()
	s.mu.Unlock()

	if !changed {
		return
	}
	s.persist(ctx, items)
	s.bus.CartChanged(items)
}

// Remove drops the matching line item. Removing an absent product is a no-op.
func (s *Store) Remove(ctx context.Context, productID string) {
	s.mu.Lock()
	kept := s.items[:0]
	removed := false
	for _, item := range s.items {
		if item.ProductID == productID {
			removed = true
			continue
		}
		kept = append(kept, item)
	}
	s.items = kept
	items := s.snapshot()
	s.mu.Unlock()

	if !removed {
		return
	}
	s.persist(ctx, items)
	s.bus.Success("Removed from cart")
	s.bus.CartChanged(items)
}

// Clear empties the cart and removes the persisted copy.
func (s *Store) Clear(ctx context.Context) {
	s.mu.Lock()
	s.items = nil
	s.mu.Unlock()

	if err := s.repo.Delete(ctx, statestore.KeyCart); err != nil {
		s.logger.Printf("clear cart: %v", err)
	}
	s.bus.CartChanged(nil)
}

// Items returns a copy of the line items in insertion order.
func (s *Store) Items() []domain.LineItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot()
}

// Total is the sum of price times quantity over all line items. Tax, shipping
// and currency conversion are computed upstream.
func (s *Store) Total() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	var sum float64
	for _, item := range s.items {
		sum += item.Total()
	}
	return sum
}

// ItemCount is the sum of quantities, not the number of distinct products;
// this is what a cart-icon badge displays.
func (s *Store) ItemCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	count := 0
	for _, item := range s.items {
		count += item.Quantity
	}
	return count
}

func (s *Store) snapshot() []domain.LineItem {
	out := make([]domain.LineItem, len(s.items))
	copy(out, s.items)
	return out
}

func (s *Store) persist(ctx context.Context, items []domain.LineItem) {
	data, err := json.Marshal(items)
	if err != nil {
		s.logger.Printf("persist cart: encode: %v", err)
		return
	}
	if err := s.repo.Save(ctx, statestore.KeyCart, data); err != nil {
		s.logger.Printf("persist cart: %v", err)
	}
}

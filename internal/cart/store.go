package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/masknetdesign/mercado-online/internal/kvstore"
	"github.com/masknetdesign/mercado-online/internal/model"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// Store holds the shopper's selected products with quantities. It keeps at
// most one line per product id; adding an already-present product increments
// its quantity. Every mutation is written through to the backing key-value
// store before the call returns, so a restart picks the cart back up.
type Store struct {
	mu     sync.Mutex
	items  []model.CartItem
	kv     kvstore.Store
	logger zerolog.Logger
}

// NewStore creates an empty cart persisted through kv.
func NewStore(kv kvstore.Store, logger zerolog.Logger) *Store {
	return &Store{
		kv:     kv,
		logger: logger.With().Str("component", "cart").Logger(),
	}
}

// Load restores the cart snapshot from the key-value store. An absent or
// corrupt snapshot degrades to an empty cart and never fails the caller.
func (s *Store) Load(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := s.kv.Get(ctx, kvstore.KeyCart)
	if err != nil {
		if !errors.Is(err, kvstore.ErrNotFound) {
			s.logger.Warn().Err(err).Msg("failed to read cart snapshot, starting empty")
		}
		s.items = nil
		return
	}

	var items []model.CartItem
	if err := json.Unmarshal(data, &items); err != nil {
		s.logger.Warn().Err(err).Msg("corrupt cart snapshot, starting empty")
		s.items = nil
		return
	}

	s.items = items
	s.logger.Debug().Int("lines", len(items)).Msg("cart restored")
}

// Add puts one unit of product in the cart. The product's name and price are
// copied as a snapshot; later catalogue edits do not touch existing lines.
func (s *Store) Add(ctx context.Context, product model.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.items {
		if s.items[i].ID == product.ID {
			s.items[i].Quantity++
			return s.persist(ctx)
		}
	}

	s.items = append(s.items, model.CartItem{Product: product, Quantity: 1})
	return s.persist(ctx)
}

// AdjustQuantity changes a line's quantity by delta. A resulting quantity of
// zero or less removes the line. Adjusting an absent product is a no-op.
func (s *Store) AdjustQuantity(ctx context.Context, productID int64, delta int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.items {
		if s.items[i].ID != productID {
			continue
		}

		s.items[i].Quantity += delta
		if s.items[i].Quantity <= 0 {
			s.items = append(s.items[:i], s.items[i+1:]...)
		}
		return s.persist(ctx)
	}

	return nil
}

// Remove deletes the line for productID if present; no-op otherwise.
func (s *Store) Remove(ctx context.Context, productID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.items {
		if s.items[i].ID == productID {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return s.persist(ctx)
		}
	}

	return nil
}

// Clear empties the cart.
func (s *Store) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = nil
	return s.persist(ctx)
}

// Items returns a copy of the cart lines in insertion order.
func (s *Store) Items() []model.CartItem {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := make([]model.CartItem, len(s.items))
	copy(items, s.items)
	return items
}

// TotalCount sums all quantities, for the cart badge.
func (s *Store) TotalCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	count := 0
	for _, item := range s.items {
		count += item.Quantity
	}
	return count
}

// Subtotal sums price times quantity over all lines with exact decimal
// arithmetic. Rounding happens only at display time.
func (s *Store) Subtotal() decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()

	total := decimal.Zero
	for _, item := range s.items {
		total = total.Add(item.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return total
}

// persist writes the full cart snapshot. Callers must hold s.mu.
func (s *Store) persist(ctx context.Context) error {
	data, err := json.Marshal(s.items)
	if err != nil {
		return fmt.Errorf("failed to serialize cart: %w", err)
	}

	if err := s.kv.Set(ctx, kvstore.KeyCart, data); err != nil {
		s.logger.Error().Err(err).Msg("failed to persist cart snapshot")
		return fmt.Errorf("failed to persist cart: %w", err)
	}
	return nil
}

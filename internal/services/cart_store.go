package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/you/shopfront/domain"
)

// CartStore mirrors the remote cart. It never patches local state from
// deltas: every mutation sends one remote write and then replaces the whole
// mirror with a fresh authoritative read. A failed write leaves the previous
// mirror in place; there is nothing speculative to roll back.
type CartStore struct {
	gateway domain.CartGateway
	session domain.SessionReader

	mu    sync.RWMutex
	items []domain.CartItem
}

// NewCartStore creates a cart store backed by the given gateway. The session
// reader supplies the user email required by the add endpoint; the bearer
// credential itself travels through the gateway's token source.
func NewCartStore(gateway domain.CartGateway, session domain.SessionReader) *CartStore {
	return &CartStore{gateway: gateway, session: session}
}

// Refresh replaces the mirror with a full authoritative read.
func (s *CartStore) Refresh(ctx context.Context) error {
	items, err := s.gateway.FetchCart(ctx)
	if err != nil {
		return fmt.Errorf("cart: refresh: %w", err)
	}

	s.mu.Lock()
	s.items = items
	s.mu.Unlock()
	return nil
}

// AddItem adds quantity units of a product, then refreshes the mirror. The
// operation is complete only once the re-read has resolved.
func (s *CartStore) AddItem(ctx context.Context, productID int64, quantity int) error {
	if quantity < 1 {
		return domain.ErrInvalidQuantity
	}

	claims, ok := s.session.Claims()
	if !ok {
		return domain.ErrNotAuthenticated
	}

	if err := s.gateway.AddCartItem(ctx, productID, quantity, claims.Email); err != nil {
		return fmt.Errorf("cart: add item: %w", err)
	}
	return s.Refresh(ctx)
}

// UpdateQuantity sets an item's quantity, then refreshes the mirror.
// Quantities below 1 are never sent; callers clamp (decrementing at
// quantity 1 is a no-op, removal deletes the item instead).
func (s *CartStore) UpdateQuantity(ctx context.Context, itemID int64, quantity int) error {
	if quantity < 1 {
		return domain.ErrInvalidQuantity
	}

	if err := s.gateway.UpdateCartItem(ctx, itemID, quantity); err != nil {
		return fmt.Errorf("cart: update quantity: %w", err)
	}
	return s.Refresh(ctx)
}

// RemoveItem deletes one cart line, then refreshes the mirror.
func (s *CartStore) RemoveItem(ctx context.Context, itemID int64) error {
	if err := s.gateway.RemoveCartItem(ctx, itemID); err != nil {
		return fmt.Errorf("cart: remove item: %w", err)
	}
	return s.Refresh(ctx)
}

// Clear removes every item, then refreshes the mirror.
func (s *CartStore) Clear(ctx context.Context) error {
	if err := s.gateway.ClearCart(ctx); err != nil {
		return fmt.Errorf("cart: clear: %w", err)
	}
	return s.Refresh(ctx)
}

// Items returns a copy of the mirrored cart in server-assigned order.
func (s *CartStore) Items() []domain.CartItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	items := make([]domain.CartItem, len(s.items))
	copy(items, s.items)
	return items
}

// Subtotal sums sellingPrice * quantity over the mirrored cart.
func (s *CartStore) Subtotal() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var total float64
	for _, item := range s.items {
		total += item.Product.SellingPrice * float64(item.Quantity)
	}
	return total
}

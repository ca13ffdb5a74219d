package services

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/you/shopfront/domain"
)

// CheckoutService coordinates the two-step checkout: create the order, then
// submit payment, strictly in that sequence. Card fields are validated
// locally before anything is sent. If order creation fails, payment is never
// attempted. If payment fails after the order was created, no compensating
// action is taken; the order stays pending on the backend.
type CheckoutService struct {
	orders domain.OrderGateway
	cart   *CartStore
	now    func() time.Time
}

// NewCheckoutService creates a checkout service
func NewCheckoutService(orders domain.OrderGateway, cart *CartStore) *CheckoutService {
	return &CheckoutService{orders: orders, cart: cart, now: time.Now}
}

// ValidateAddress requires every address field non-empty after trimming
func ValidateAddress(a domain.Address) error {
	fields := []string{a.Street, a.City, a.State, a.Country, a.PostalCode}
	for _, f := range fields {
		if strings.TrimSpace(f) == "" {
			return domain.ErrAddressIncomplete
		}
	}
	return nil
}

// ValidateCard checks the card form fields: number at least 15 digits after
// stripping separators, expiry MM/YY not already past, CVV at least 3 digits.
func (s *CheckoutService) ValidateCard(card domain.CardDetails) error {
	if len(stripNonDigits(card.Number)) < 15 {
		return domain.ErrCardNumberInvalid
	}
	if err := s.validateExpiry(card.Expiry); err != nil {
		return err
	}
	if len(stripNonDigits(card.CVV)) < 3 {
		return domain.ErrCardCVVInvalid
	}
	return nil
}

func (s *CheckoutService) validateExpiry(expiry string) error {
	parts := strings.Split(expiry, "/")
	if len(parts) != 2 || len(parts[0]) != 2 || len(parts[1]) != 2 {
		return domain.ErrCardExpiryInvalid
	}

	month, err := strconv.Atoi(parts[0])
	if err != nil || month < 1 || month > 12 {
		return domain.ErrCardExpiryInvalid
	}
	year, err := strconv.Atoi(parts[1])
	if err != nil {
		return domain.ErrCardExpiryInvalid
	}

	now := s.now()
	expiryMonth := time.Date(2000+year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	currentMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	if expiryMonth.Before(currentMonth) {
		return domain.ErrCardExpired
	}
	return nil
}

func stripNonDigits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// PlaceOrder runs the full checkout: local validation, order creation, then
// payment. On payment success the remote cart is cleared.
func (s *CheckoutService) PlaceOrder(ctx context.Context, address domain.Address, card domain.CardDetails) (*domain.PaymentResult, error) {
	if err := ValidateAddress(address); err != nil {
		return nil, err
	}
	if err := s.ValidateCard(card); err != nil {
		return nil, err
	}

	if err := s.orders.CreateOrder(ctx, address); err != nil {
		return nil, fmt.Errorf("checkout: create order: %w", err)
	}

	result, err := s.orders.SubmitPayment(ctx, card)
	if err != nil {
		// The order already exists on the backend at this point.
		return nil, fmt.Errorf("checkout: submit payment: %w", err)
	}

	if err := s.cart.Clear(ctx); err != nil {
		log.Printf("checkout: clear cart after payment: %v", err)
	}
	return result, nil
}

package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/you/shopfront/domain"
	"github.com/you/shopfront/internal/mocks"
)

func validAddress() domain.Address {
	return domain.Address{
		Street:     "12 Market Road",
		City:       "Pune",
		State:      "MH",
		Country:    "India",
		PostalCode: "411001",
	}
}

func validCard() domain.CardDetails {
	return domain.CardDetails{Number: "4111-1111-1111-1111", Expiry: "12/30", CVV: "123"}
}

func newCheckout(orders domain.OrderGateway, cartGateway domain.CartGateway) *CheckoutService {
	cart := NewCartStore(cartGateway, authedSession("buyer@example.com"))
	svc := NewCheckoutService(orders, cart)
	svc.now = func() time.Time { return time.Date(2025, time.June, 15, 0, 0, 0, 0, time.UTC) }
	return svc
}

func TestCheckoutService_ValidateCard(t *testing.T) {
	svc := newCheckout(mocks.NewMockOrderGateway(), mocks.NewMockCartGateway())

	tests := []struct {
		name string
		card domain.CardDetails
		want error
	}{
		{
			name: "dashed number strips to 16 digits",
			card: domain.CardDetails{Number: "4111-1111-1111-1111", Expiry: "12/30", CVV: "123"},
			want: nil,
		},
		{
			name: "spaced number strips to 15 digits",
			card: domain.CardDetails{Number: "3782 822463 10005", Expiry: "12/30", CVV: "1234"},
			want: nil,
		},
		{
			name: "too few digits",
			card: domain.CardDetails{Number: "4111 1111 1111", Expiry: "12/30", CVV: "123"},
			want: domain.ErrCardNumberInvalid,
		},
		{
			name: "expiry already past",
			card: domain.CardDetails{Number: "4111111111111111", Expiry: "01/20", CVV: "123"},
			want: domain.ErrCardExpired,
		},
		{
			name: "expiry in current month is accepted",
			card: domain.CardDetails{Number: "4111111111111111", Expiry: "06/25", CVV: "123"},
			want: nil,
		},
		{
			name: "expiry one month ahead",
			card: domain.CardDetails{Number: "4111111111111111", Expiry: "07/25", CVV: "123"},
			want: nil,
		},
		{
			name: "expiry one month back",
			card: domain.CardDetails{Number: "4111111111111111", Expiry: "05/25", CVV: "123"},
			want: domain.ErrCardExpired,
		},
		{
			name: "month out of range",
			card: domain.CardDetails{Number: "4111111111111111", Expiry: "13/30", CVV: "123"},
			want: domain.ErrCardExpiryInvalid,
		},
		{
			name: "malformed expiry",
			card: domain.CardDetails{Number: "4111111111111111", Expiry: "1/30", CVV: "123"},
			want: domain.ErrCardExpiryInvalid,
		},
		{
			name: "cvv too short",
			card: domain.CardDetails{Number: "4111111111111111", Expiry: "12/30", CVV: "12"},
			want: domain.ErrCardCVVInvalid,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := svc.ValidateCard(tt.card)
			if tt.want == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.want)
			}
		})
	}
}

func TestValidateAddress(t *testing.T) {
	assert.NoError(t, ValidateAddress(validAddress()))

	incomplete := validAddress()
	incomplete.City = "  "
	assert.ErrorIs(t, ValidateAddress(incomplete), domain.ErrAddressIncomplete)
}

func TestCheckoutService_PlaceOrder(t *testing.T) {
	orders := mocks.NewMockOrderGateway()
	cartGateway := mocks.NewMockCartGateway()
	svc := newCheckout(orders, cartGateway)
	require.NoError(t, svc.cart.AddItem(context.Background(), 7, 2))

	result, err := svc.PlaceOrder(context.Background(), validAddress(), validCard())
	require.NoError(t, err)
	assert.Equal(t, "Payment successful!", result.Message)
	assert.Equal(t, 1, orders.CreateOrderCalls)
	assert.Equal(t, 1, orders.SubmitPaymentCalls)
	assert.Empty(t, svc.cart.Items(), "cart is cleared after a successful payment")
}

func TestCheckoutService_ValidationBlocksNetwork(t *testing.T) {
	orders := mocks.NewMockOrderGateway()
	svc := newCheckout(orders, mocks.NewMockCartGateway())

	card := validCard()
	card.CVV = "1"
	_, err := svc.PlaceOrder(context.Background(), validAddress(), card)
	assert.ErrorIs(t, err, domain.ErrCardCVVInvalid)
	assert.Zero(t, orders.CreateOrderCalls)
	assert.Zero(t, orders.SubmitPaymentCalls)
}

func TestCheckoutService_OrderFailureSkipsPayment(t *testing.T) {
	orders := mocks.NewMockOrderGateway()
	orders.CreateOrderFunc = func(ctx context.Context, address domain.Address) error {
		return errors.New("checkout failed")
	}
	svc := newCheckout(orders, mocks.NewMockCartGateway())

	_, err := svc.PlaceOrder(context.Background(), validAddress(), validCard())
	require.Error(t, err)
	assert.Equal(t, 1, orders.CreateOrderCalls)
	assert.Zero(t, orders.SubmitPaymentCalls, "payment must never run when order creation fails")
}

func TestCheckoutService_PaymentFailureKeepsCart(t *testing.T) {
	orders := mocks.NewMockOrderGateway()
	orders.SubmitPaymentFunc = func(ctx context.Context, card domain.CardDetails) (*domain.PaymentResult, error) {
		return nil, errors.New("card declined")
	}
	cartGateway := mocks.NewMockCartGateway()
	svc := newCheckout(orders, cartGateway)
	require.NoError(t, svc.cart.AddItem(context.Background(), 7, 2))

	_, err := svc.PlaceOrder(context.Background(), validAddress(), validCard())
	require.Error(t, err)
	assert.Equal(t, 1, orders.CreateOrderCalls)
	assert.Equal(t, 1, orders.SubmitPaymentCalls)
	assert.Len(t, svc.cart.Items(), 1, "cart stays intact when payment fails")
	assert.Zero(t, cartGateway.ClearCalls)
}

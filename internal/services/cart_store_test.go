package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/you/shopfront/domain"
	"github.com/you/shopfront/internal/mocks"
)

func authedSession(email string) *mocks.MockSessionReader {
	session := mocks.NewMockSessionReader()
	session.AuthenticatedFunc = func() bool { return true }
	session.ClaimsFunc = func() (*domain.Claims, bool) {
		return &domain.Claims{Email: email}, true
	}
	session.TokenFunc = func() (string, bool) { return "tok", true }
	return session
}

func TestCartStore_AddItemMirrorsRemote(t *testing.T) {
	gateway := mocks.NewMockCartGateway()
	store := NewCartStore(gateway, authedSession("buyer@example.com"))

	require.NoError(t, store.AddItem(context.Background(), 7, 2))

	items := store.Items()
	require.Len(t, items, 1)
	assert.Equal(t, int64(7), items[0].Product.ID)
	assert.Equal(t, 2, items[0].Quantity)
	assert.Equal(t, 1, gateway.AddCalls)
	assert.Equal(t, 1, gateway.FetchCalls, "every mutation is followed by a full re-read")
}

func TestCartStore_AddItemRejectsBadQuantity(t *testing.T) {
	gateway := mocks.NewMockCartGateway()
	store := NewCartStore(gateway, authedSession("buyer@example.com"))

	err := store.AddItem(context.Background(), 7, 0)
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)
	assert.Zero(t, gateway.AddCalls, "invalid quantity must never reach the network")
}

func TestCartStore_AddItemRequiresSession(t *testing.T) {
	gateway := mocks.NewMockCartGateway()
	store := NewCartStore(gateway, mocks.NewMockSessionReader())

	err := store.AddItem(context.Background(), 7, 1)
	assert.ErrorIs(t, err, domain.ErrNotAuthenticated)
	assert.Zero(t, gateway.AddCalls)
}

func TestCartStore_UpdateQuantityNeverSendsZero(t *testing.T) {
	gateway := mocks.NewMockCartGateway()
	store := NewCartStore(gateway, authedSession("buyer@example.com"))
	require.NoError(t, store.AddItem(context.Background(), 7, 1))

	err := store.UpdateQuantity(context.Background(), 1, 0)
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)
	assert.Zero(t, gateway.UpdateCalls)

	items := store.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 1, items[0].Quantity, "mirrored quantity stays at 1")
}

func TestCartStore_RemoveItem(t *testing.T) {
	gateway := mocks.NewMockCartGateway()
	store := NewCartStore(gateway, authedSession("buyer@example.com"))
	require.NoError(t, store.AddItem(context.Background(), 7, 2))
	itemID := store.Items()[0].ID

	require.NoError(t, store.RemoveItem(context.Background(), itemID))
	assert.Empty(t, store.Items())
}

func TestCartStore_MutateThenReadEqualsReadAlone(t *testing.T) {
	gateway := mocks.NewMockCartGateway()
	store := NewCartStore(gateway, authedSession("buyer@example.com"))

	require.NoError(t, store.AddItem(context.Background(), 7, 2))
	require.NoError(t, store.UpdateQuantity(context.Background(), 1, 5))
	afterMutations := store.Items()

	require.NoError(t, store.Refresh(context.Background()))
	afterRefresh := store.Items()

	assert.Equal(t, afterRefresh, afterMutations, "mirror must equal a fresh authoritative read")
}

func TestCartStore_WriteFailureKeepsMirror(t *testing.T) {
	gateway := mocks.NewMockCartGateway()
	store := NewCartStore(gateway, authedSession("buyer@example.com"))
	require.NoError(t, store.AddItem(context.Background(), 7, 2))
	before := store.Items()

	gateway.UpdateCartItemFunc = func(ctx context.Context, itemID int64, quantity int) error {
		return errors.New("backend down")
	}

	err := store.UpdateQuantity(context.Background(), before[0].ID, 3)
	require.Error(t, err)
	assert.Equal(t, before, store.Items(), "failed write leaves the prior mirror in place")
}

func TestCartStore_RefreshFailureKeepsMirror(t *testing.T) {
	gateway := mocks.NewMockCartGateway()
	store := NewCartStore(gateway, authedSession("buyer@example.com"))
	require.NoError(t, store.AddItem(context.Background(), 7, 2))
	before := store.Items()

	gateway.FetchCartFunc = func(ctx context.Context) ([]domain.CartItem, error) {
		return nil, errors.New("backend down")
	}

	err := store.Refresh(context.Background())
	require.Error(t, err)
	assert.Equal(t, before, store.Items())
}

func TestCartStore_Clear(t *testing.T) {
	gateway := mocks.NewMockCartGateway()
	store := NewCartStore(gateway, authedSession("buyer@example.com"))
	require.NoError(t, store.AddItem(context.Background(), 7, 2))
	require.NoError(t, store.AddItem(context.Background(), 8, 1))

	require.NoError(t, store.Clear(context.Background()))
	assert.Empty(t, store.Items())
}

func TestCartStore_Subtotal(t *testing.T) {
	gateway := mocks.NewMockCartGateway()
	gateway.Remote = []domain.CartItem{
		{ID: 1, Product: domain.Product{ID: 7, SellingPrice: 3.50}, Quantity: 2},
		{ID: 2, Product: domain.Product{ID: 8, SellingPrice: 10.00}, Quantity: 1},
	}
	store := NewCartStore(gateway, authedSession("buyer@example.com"))
	require.NoError(t, store.Refresh(context.Background()))

	assert.InDelta(t, 17.00, store.Subtotal(), 0.001)
}

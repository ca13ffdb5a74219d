package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/you/shopfront/domain"
	"github.com/you/shopfront/internal/mocks"
)

func TestAddressBook_CreateValidates(t *testing.T) {
	gateway := mocks.NewMockAddressGateway()
	var created bool
	gateway.CreateAddressFunc = func(ctx context.Context, address domain.Address) (*domain.Address, error) {
		created = true
		saved := address
		saved.ID = 42
		return &saved, nil
	}
	book := NewAddressBook(gateway)

	incomplete := validAddress()
	incomplete.PostalCode = ""
	_, err := book.Create(context.Background(), incomplete)
	assert.ErrorIs(t, err, domain.ErrAddressIncomplete)
	assert.False(t, created, "incomplete addresses never reach the network")

	saved, err := book.Create(context.Background(), validAddress())
	require.NoError(t, err)
	assert.Equal(t, int64(42), saved.ID)
}

func TestAddressBook_UpdateValidates(t *testing.T) {
	gateway := mocks.NewMockAddressGateway()
	book := NewAddressBook(gateway)

	incomplete := validAddress()
	incomplete.Street = "   "
	_, err := book.Update(context.Background(), incomplete)
	assert.ErrorIs(t, err, domain.ErrAddressIncomplete)

	addr := validAddress()
	addr.ID = 7
	updated, err := book.Update(context.Background(), addr)
	require.NoError(t, err)
	assert.Equal(t, int64(7), updated.ID)
}

func TestAddressBook_ListAndDelete(t *testing.T) {
	gateway := mocks.NewMockAddressGateway()
	gateway.ListAddressesFunc = func(ctx context.Context) ([]domain.Address, error) {
		return []domain.Address{{ID: 1, City: "Pune"}}, nil
	}
	var deleted int64
	gateway.DeleteAddressFunc = func(ctx context.Context, id int64) error {
		deleted = id
		return nil
	}
	book := NewAddressBook(gateway)

	addrs, err := book.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, addrs, 1)

	require.NoError(t, book.Delete(context.Background(), 1))
	assert.Equal(t, int64(1), deleted)
}

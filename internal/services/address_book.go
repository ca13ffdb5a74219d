package services

import (
	"context"
	"fmt"

	"github.com/you/shopfront/domain"
)

// AddressBook manages the user's shipping addresses. Writes are validated
// locally before any network call.
type AddressBook struct {
	gateway domain.AddressGateway
}

// NewAddressBook creates an address book
func NewAddressBook(gateway domain.AddressGateway) *AddressBook {
	return &AddressBook{gateway: gateway}
}

// List returns all saved addresses.
func (b *AddressBook) List(ctx context.Context) ([]domain.Address, error) {
	addresses, err := b.gateway.ListAddresses(ctx)
	if err != nil {
		return nil, fmt.Errorf("addresses: list: %w", err)
	}
	return addresses, nil
}

// Create saves a new address.
func (b *AddressBook) Create(ctx context.Context, address domain.Address) (*domain.Address, error) {
	if err := ValidateAddress(address); err != nil {
		return nil, err
	}
	created, err := b.gateway.CreateAddress(ctx, address)
	if err != nil {
		return nil, fmt.Errorf("addresses: create: %w", err)
	}
	return created, nil
}

// Update replaces an existing address.
func (b *AddressBook) Update(ctx context.Context, address domain.Address) (*domain.Address, error) {
	if err := ValidateAddress(address); err != nil {
		return nil, err
	}
	updated, err := b.gateway.UpdateAddress(ctx, address)
	if err != nil {
		return nil, fmt.Errorf("addresses: update: %w", err)
	}
	return updated, nil
}

// Delete removes an address.
func (b *AddressBook) Delete(ctx context.Context, id int64) error {
	if err := b.gateway.DeleteAddress(ctx, id); err != nil {
		return fmt.Errorf("addresses: delete: %w", err)
	}
	return nil
}

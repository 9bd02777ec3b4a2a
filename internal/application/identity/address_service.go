package identity

import (
	"context"

	"github.com/ecommerce/backend/internal/domain/identity"
	"github.com/ecommerce/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// AddressService handles a user's saved addresses. All lookups are scoped to
// the owning user; addresses of other users read as not found.
type AddressService struct {
	repos Repos
	tx    TxManager
}

// NewAddressService creates a new AddressService
func NewAddressService(repos Repos, tx TxManager) *AddressService {
	return &AddressService{repos: repos, tx: tx}
}

// List returns the user's addresses, default first
func (s *AddressService) List(ctx context.Context, userID uuid.UUID) ([]AddressResponse, error) {
	addresses, err := s.repos.Addresses.FindByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return ToAddressResponses(addresses), nil
}

// Get returns one of the user's addresses
func (s *AddressService) Get(ctx context.Context, userID, addressID uuid.UUID) (*AddressResponse, error) {
	address, err := s.findOwned(ctx, s.repos, userID, addressID)
	if err != nil {
		return nil, err
	}
	return ToAddressResponse(address), nil
}

// Create adds an address. The user's first address becomes the default;
// otherwise the default flag follows the request and displaces the previous
// default atomically.
func (s *AddressService) Create(ctx context.Context, userID uuid.UUID, req AddressRequest) (*AddressResponse, error) {
	var created *identity.Address

	err := s.tx.RunInTx(ctx, func(ctx context.Context, repos Repos) error {
		address, err := identity.NewAddress(userID, fieldsFromRequest(req))
		if err != nil {
			return err
		}

		existing, err := repos.Addresses.FindByUser(ctx, userID)
		if err != nil {
			return err
		}

		if req.IsDefault || len(existing) == 0 {
			if err := repos.Addresses.ClearDefaultForUser(ctx, userID); err != nil {
				return err
			}
			address.MarkDefault()
		}

		if err := repos.Addresses.Save(ctx, address); err != nil {
			return err
		}
		created = address
		return nil
	})
	if err != nil {
		return nil, err
	}
	return ToAddressResponse(created), nil
}

// Update replaces an address's fields
func (s *AddressService) Update(ctx context.Context, userID, addressID uuid.UUID, req AddressRequest) (*AddressResponse, error) {
	var updated *identity.Address

	err := s.tx.RunInTx(ctx, func(ctx context.Context, repos Repos) error {
		address, err := s.findOwned(ctx, repos, userID, addressID)
		if err != nil {
			return err
		}

		if err := address.Update(fieldsFromRequest(req)); err != nil {
			return err
		}

		if req.IsDefault && !address.IsDefault {
			if err := repos.Addresses.ClearDefaultForUser(ctx, userID); err != nil {
				return err
			}
			address.MarkDefault()
		}

		if err := repos.Addresses.Save(ctx, address); err != nil {
			return err
		}
		updated = address
		return nil
	})
	if err != nil {
		return nil, err
	}
	return ToAddressResponse(updated), nil
}

// SetDefault makes the address the user's default, displacing any other
func (s *AddressService) SetDefault(ctx context.Context, userID, addressID uuid.UUID) (*AddressResponse, error) {
	var address *identity.Address

	err := s.tx.RunInTx(ctx, func(ctx context.Context, repos Repos) error {
		var err error
		address, err = s.findOwned(ctx, repos, userID, addressID)
		if err != nil {
			return err
		}

		if address.IsDefault {
			return nil
		}

		if err := repos.Addresses.ClearDefaultForUser(ctx, userID); err != nil {
			return err
		}
		address.MarkDefault()
		return repos.Addresses.Save(ctx, address)
	})
	if err != nil {
		return nil, err
	}
	return ToAddressResponse(address), nil
}

// Delete removes an address. When the default address is deleted the most
// recent remaining address, if any, becomes the new default.
func (s *AddressService) Delete(ctx context.Context, userID, addressID uuid.UUID) error {
	return s.tx.RunInTx(ctx, func(ctx context.Context, repos Repos) error {
		address, err := s.findOwned(ctx, repos, userID, addressID)
		if err != nil {
			return err
		}

		wasDefault := address.IsDefault
		if err := repos.Addresses.Delete(ctx, address.ID); err != nil {
			return err
		}

		if wasDefault {
			remaining, err := repos.Addresses.FindByUser(ctx, userID)
			if err != nil {
				return err
			}
			if len(remaining) > 0 {
				next := remaining[0]
				next.MarkDefault()
				return repos.Addresses.Save(ctx, &next)
			}
		}
		return nil
	})
}

func (s *AddressService) findOwned(ctx context.Context, repos Repos, userID, addressID uuid.UUID) (*identity.Address, error) {
	address, err := repos.Addresses.FindByID(ctx, addressID)
	if err != nil {
		return nil, err
	}
	if address.UserID != userID {
		return nil, shared.ErrNotFound
	}
	return address, nil
}

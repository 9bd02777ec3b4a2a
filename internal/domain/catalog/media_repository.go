package catalog

import (
	"context"

	"github.com/google/uuid"
)

// MediaRepository defines the interface for media object persistence
type MediaRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*MediaObject, error)

	// FindByOwner lists an owner's media ordered by sort_order; the primary
	// image sorts first
	FindByOwner(ctx context.Context, ownerKind MediaOwnerKind, ownerID uuid.UUID) ([]MediaObject, error)

	// ClearPrimaryForOwner unsets is_primary on all of the owner's media
	ClearPrimaryForOwner(ctx context.Context, ownerKind MediaOwnerKind, ownerID uuid.UUID) error

	Save(ctx context.Context, media *MediaObject) error

	Delete(ctx context.Context, id uuid.UUID) error
}

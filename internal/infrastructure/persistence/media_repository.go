package persistence

import (
	"context"
	"errors"

	"github.com/ecommerce/backend/internal/domain/catalog"
	"github.com/ecommerce/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormMediaRepository implements MediaRepository using GORM
type GormMediaRepository struct {
	db *gorm.DB
}

// NewGormMediaRepository creates a new GormMediaRepository
func NewGormMediaRepository(db *gorm.DB) *GormMediaRepository {
	return &GormMediaRepository{db: db}
}

// FindByID finds a media object by its ID
func (r *GormMediaRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.MediaObject, error) {
	var media catalog.MediaObject
	if err := r.db.WithContext(ctx).First(&media, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &media, nil
}

// FindByOwner finds an owner's media; the primary image sorts first
func (r *GormMediaRepository) FindByOwner(ctx context.Context, ownerKind catalog.MediaOwnerKind, ownerID uuid.UUID) ([]catalog.MediaObject, error) {
	var media []catalog.MediaObject
	if err := r.db.WithContext(ctx).
		Where("owner_kind = ? AND owner_id = ?", ownerKind, ownerID).
		Order("is_primary DESC, sort_order ASC, created_at ASC").
		Find(&media).Error; err != nil {
		return nil, err
	}
	return media, nil
}

// ClearPrimaryForOwner unsets is_primary on all of the owner's media
func (r *GormMediaRepository) ClearPrimaryForOwner(ctx context.Context, ownerKind catalog.MediaOwnerKind, ownerID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&catalog.MediaObject{}).
		Where("owner_kind = ? AND owner_id = ? AND is_primary = ?", ownerKind, ownerID, true).
		Update("is_primary", false).Error
}

// Save creates or updates a media object
func (r *GormMediaRepository) Save(ctx context.Context, media *catalog.MediaObject) error {
	return translateError(r.db.WithContext(ctx).Save(media).Error)
}

// Delete permanently removes a media object
func (r *GormMediaRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&catalog.MediaObject{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Ensure GormMediaRepository implements MediaRepository
var _ catalog.MediaRepository = (*GormMediaRepository)(nil)

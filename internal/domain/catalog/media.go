package catalog

import (
	"strings"

	"github.com/ecommerce/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// MaxMediaSizeBytes caps uploads at 10MB
const MaxMediaSizeBytes = 10 << 20

// MediaOwnerKind identifies the aggregate a media object belongs to
type MediaOwnerKind string

const (
	MediaOwnerCategory MediaOwnerKind = "category"
	MediaOwnerBrand    MediaOwnerKind = "brand"
	MediaOwnerProduct  MediaOwnerKind = "product"
	MediaOwnerVariant  MediaOwnerKind = "variant"
)

// MediaPurpose states what the image is for on its owner
type MediaPurpose string

const (
	MediaPurposeImage   MediaPurpose = "image"
	MediaPurposeBanner  MediaPurpose = "banner"
	MediaPurposeLogo    MediaPurpose = "logo"
	MediaPurposeGallery MediaPurpose = "gallery"
)

// AllowedMediaContentTypes whitelists the image types accepted for upload
var AllowedMediaContentTypes = map[string]bool{
	"image/jpeg":    true,
	"image/png":     true,
	"image/gif":     true,
	"image/webp":    true,
	"image/svg+xml": true,
}

// MediaObject records an image stored in the blob store. The object itself
// is uploaded directly by the client via a presigned URL; this entity only
// tracks its key and metadata.
type MediaObject struct {
	shared.BaseEntity
	OwnerKind MediaOwnerKind `gorm:"type:varchar(20);not null;index:idx_media_owner"`
	OwnerID   uuid.UUID      `gorm:"type:uuid;not null;index:idx_media_owner"`
	Purpose   MediaPurpose   `gorm:"type:varchar(10);not null;default:'gallery'"`

	FileName    string `gorm:"type:varchar(255);not null"`
	ContentType string `gorm:"type:varchar(100);not null"`
	SizeBytes   int64  `gorm:"not null"`
	StorageKey  string `gorm:"type:varchar(500);not null;uniqueIndex"`

	AltText   string `gorm:"type:varchar(255)"`
	IsPrimary bool   `gorm:"not null;default:false"`
	SortOrder int    `gorm:"not null;default:0"`
}

// TableName returns the table name for GORM
func (MediaObject) TableName() string {
	return "media_objects"
}

// NewMediaObject validates the upload metadata and creates the record
func NewMediaObject(ownerKind MediaOwnerKind, ownerID uuid.UUID, purpose MediaPurpose, fileName, contentType string, sizeBytes int64, storageKey string) (*MediaObject, error) {
	switch ownerKind {
	case MediaOwnerCategory, MediaOwnerBrand, MediaOwnerProduct, MediaOwnerVariant:
	default:
		return nil, shared.NewFieldError("INVALID_INPUT", "owner_kind", "Unknown media owner kind")
	}
	switch purpose {
	case MediaPurposeImage, MediaPurposeBanner, MediaPurposeLogo, MediaPurposeGallery:
	default:
		return nil, shared.NewFieldError("INVALID_INPUT", "purpose", "Unknown media purpose")
	}
	if ownerID == uuid.Nil {
		return nil, shared.NewFieldError("INVALID_INPUT", "owner_id", "Owner is required")
	}
	if strings.TrimSpace(fileName) == "" {
		return nil, shared.NewFieldError("INVALID_INPUT", "file_name", "File name cannot be empty")
	}
	if !AllowedMediaContentTypes[contentType] {
		return nil, shared.NewFieldError("INVALID_INPUT", "content_type", "Content type is not an allowed image type")
	}
	if sizeBytes <= 0 {
		return nil, shared.NewFieldError("INVALID_INPUT", "size_bytes", "Size must be positive")
	}
	if sizeBytes > MaxMediaSizeBytes {
		return nil, shared.NewFieldError("INVALID_INPUT", "size_bytes", "File exceeds the 10MB limit")
	}
	if strings.TrimSpace(storageKey) == "" {
		return nil, shared.NewFieldError("INVALID_INPUT", "storage_key", "Storage key cannot be empty")
	}

	return &MediaObject{
		BaseEntity:  shared.NewBaseEntity(),
		OwnerKind:   ownerKind,
		OwnerID:     ownerID,
		Purpose:     purpose,
		FileName:    strings.TrimSpace(fileName),
		ContentType: contentType,
		SizeBytes:   sizeBytes,
		StorageKey:  storageKey,
	}, nil
}

// SetAltText sets the accessibility text
func (m *MediaObject) SetAltText(alt string) error {
	if len(alt) > 255 {
		return shared.NewFieldError("INVALID_INPUT", "alt_text", "Alt text cannot exceed 255 characters")
	}
	m.AltText = alt
	m.Touch()
	return nil
}

// MarkPrimary flags this object as the owner's primary image. The
// application layer clears the flag on siblings in the same transaction.
func (m *MediaObject) MarkPrimary() {
	m.IsPrimary = true
	m.Touch()
}

// ClearPrimary removes the primary flag
func (m *MediaObject) ClearPrimary() {
	m.IsPrimary = false
	m.Touch()
}

// SetSortOrder sets the gallery position
func (m *MediaObject) SetSortOrder(order int) {
	m.SortOrder = order
	m.Touch()
}

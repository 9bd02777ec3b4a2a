package catalog

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/ecommerce/backend/internal/domain/catalog"
	"github.com/ecommerce/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// ObjectStorage is the port to the blob store. Implemented by the S3
// adapter and a local stub in the infrastructure layer.
type ObjectStorage interface {
	// GenerateUploadURL returns a presigned PUT URL for the key
	GenerateUploadURL(ctx context.Context, storageKey, contentType string, expiresIn time.Duration) (string, time.Time, error)

	// GenerateDownloadURL returns a presigned GET URL for the key
	GenerateDownloadURL(ctx context.Context, storageKey string, expiresIn time.Duration) (string, time.Time, error)

	// DeleteObject removes the object from storage
	DeleteObject(ctx context.Context, storageKey string) error

	// ObjectExists reports whether the object has been uploaded
	ObjectExists(ctx context.Context, storageKey string) (bool, error)
}

// MediaServiceConfig holds URL expiry settings
type MediaServiceConfig struct {
	UploadURLExpiry   time.Duration
	DownloadURLExpiry time.Duration
}

// DefaultMediaServiceConfig returns the default expiry settings
func DefaultMediaServiceConfig() MediaServiceConfig {
	return MediaServiceConfig{
		UploadURLExpiry:   15 * time.Minute,
		DownloadURLExpiry: 1 * time.Hour,
	}
}

// IssueUploadURLRequest asks for a presigned upload slot
type IssueUploadURLRequest struct {
	OwnerKind   string `json:"owner_kind" binding:"required,oneof=category brand product variant"`
	OwnerID     uuid.UUID `json:"owner_id" binding:"required"`
	Purpose     string `json:"purpose" binding:"required,oneof=image banner logo gallery"`
	FileName    string `json:"file_name" binding:"required,max=255"`
	ContentType string `json:"content_type" binding:"required,max=100"`
	SizeBytes   int64  `json:"size_bytes" binding:"required,min=1"`
}

// IssueUploadURLResponse carries the slot the client uploads into
type IssueUploadURLResponse struct {
	MediaID    uuid.UUID `json:"media_id"`
	StorageKey string    `json:"storage_key"`
	UploadURL  string    `json:"upload_url"`
	ExpiresAt  time.Time `json:"expires_at"`
}

// MediaResponse represents a stored media object with a fresh download URL
type MediaResponse struct {
	ID          uuid.UUID `json:"id"`
	OwnerKind   string    `json:"owner_kind"`
	OwnerID     uuid.UUID `json:"owner_id"`
	Purpose     string    `json:"purpose"`
	FileName    string    `json:"file_name"`
	ContentType string    `json:"content_type"`
	SizeBytes   int64     `json:"size_bytes"`
	AltText     string    `json:"alt_text"`
	IsPrimary   bool      `json:"is_primary"`
	SortOrder   int       `json:"sort_order"`
	URL         string    `json:"url"`
	CreatedAt   time.Time `json:"created_at"`
}

// MediaService issues presigned upload URLs and tracks the resulting media
// records. Raw image bytes never pass through this service.
type MediaService struct {
	repos   Repos
	tx      TxManager
	storage ObjectStorage
	config  MediaServiceConfig
}

// NewMediaService creates a new MediaService
func NewMediaService(repos Repos, tx TxManager, storage ObjectStorage) *MediaService {
	return &MediaService{
		repos:   repos,
		tx:      tx,
		storage: storage,
		config:  DefaultMediaServiceConfig(),
	}
}

// SetConfig overrides the expiry settings
func (s *MediaService) SetConfig(config MediaServiceConfig) {
	s.config = config
}

// IssueUploadURL validates the upload metadata (owner exists, image content
// type, 10MB cap), records the media object, and returns a presigned URL the
// client uploads the bytes to directly.
func (s *MediaService) IssueUploadURL(ctx context.Context, req IssueUploadURLRequest) (*IssueUploadURLResponse, error) {
	ownerKind := catalog.MediaOwnerKind(req.OwnerKind)
	purpose := catalog.MediaPurpose(req.Purpose)

	var media *catalog.MediaObject

	err := s.tx.RunInTx(ctx, func(ctx context.Context, repos Repos) error {
		if err := s.checkOwnerExists(ctx, repos, ownerKind, req.OwnerID); err != nil {
			return err
		}

		storageKey := buildStorageKey(ownerKind, req.OwnerID, req.FileName)

		var err error
		media, err = catalog.NewMediaObject(ownerKind, req.OwnerID, purpose, req.FileName, req.ContentType, req.SizeBytes, storageKey)
		if err != nil {
			return err
		}

		return repos.Media.Save(ctx, media)
	})
	if err != nil {
		return nil, err
	}

	uploadURL, expiresAt, err := s.storage.GenerateUploadURL(ctx, media.StorageKey, media.ContentType, s.config.UploadURLExpiry)
	if err != nil {
		// roll the record back so a retry can reuse the slot
		_ = s.repos.Media.Delete(ctx, media.ID)
		return nil, shared.NewDomainError("UPLOAD_URL_FAILED", "Failed to generate upload URL")
	}

	return &IssueUploadURLResponse{
		MediaID:    media.ID,
		StorageKey: media.StorageKey,
		UploadURL:  uploadURL,
		ExpiresAt:  expiresAt,
	}, nil
}

// ConfirmUpload verifies the bytes landed in storage and wires the media
// into its owner: image/banner/logo purposes update the owner's URL field,
// gallery media becomes primary when it is the owner's first.
func (s *MediaService) ConfirmUpload(ctx context.Context, mediaID uuid.UUID) (*MediaResponse, error) {
	media, err := s.repos.Media.FindByID(ctx, mediaID)
	if err != nil {
		return nil, err
	}

	exists, err := s.storage.ObjectExists(ctx, media.StorageKey)
	if err != nil {
		return nil, shared.NewDomainError("STORAGE_CHECK_FAILED", "Failed to verify upload")
	}
	if !exists {
		return nil, shared.NewDomainError("UPLOAD_NOT_FOUND", "File not found in storage; upload it first")
	}

	err = s.tx.RunInTx(ctx, func(ctx context.Context, repos Repos) error {
		if media.Purpose != catalog.MediaPurposeGallery {
			if err := s.applyOwnerURL(ctx, repos, media); err != nil {
				return err
			}
		} else {
			siblings, err := repos.Media.FindByOwner(ctx, media.OwnerKind, media.OwnerID)
			if err != nil {
				return err
			}
			if len(siblings) <= 1 {
				media.MarkPrimary()
			}
		}
		return repos.Media.Save(ctx, media)
	})
	if err != nil {
		return nil, err
	}

	return s.toResponse(ctx, media)
}

// ListByOwner lists an owner's media with fresh download URLs
func (s *MediaService) ListByOwner(ctx context.Context, ownerKind string, ownerID uuid.UUID) ([]MediaResponse, error) {
	media, err := s.repos.Media.FindByOwner(ctx, catalog.MediaOwnerKind(ownerKind), ownerID)
	if err != nil {
		return nil, err
	}

	responses := make([]MediaResponse, 0, len(media))
	for i := range media {
		resp, err := s.toResponse(ctx, &media[i])
		if err != nil {
			return nil, err
		}
		responses = append(responses, *resp)
	}
	return responses, nil
}

// SetPrimary makes the media its owner's primary image, clearing siblings
func (s *MediaService) SetPrimary(ctx context.Context, mediaID uuid.UUID) error {
	return s.tx.RunInTx(ctx, func(ctx context.Context, repos Repos) error {
		media, err := repos.Media.FindByID(ctx, mediaID)
		if err != nil {
			return err
		}
		if err := repos.Media.ClearPrimaryForOwner(ctx, media.OwnerKind, media.OwnerID); err != nil {
			return err
		}
		media.MarkPrimary()
		return repos.Media.Save(ctx, media)
	})
}

// Delete removes the record and the stored object
func (s *MediaService) Delete(ctx context.Context, mediaID uuid.UUID) error {
	media, err := s.repos.Media.FindByID(ctx, mediaID)
	if err != nil {
		return err
	}

	if err := s.repos.Media.Delete(ctx, media.ID); err != nil {
		return err
	}
	// storage cleanup is best-effort; an orphaned object is harmless
	_ = s.storage.DeleteObject(ctx, media.StorageKey)
	return nil
}

func (s *MediaService) checkOwnerExists(ctx context.Context, repos Repos, kind catalog.MediaOwnerKind, ownerID uuid.UUID) error {
	var err error
	switch kind {
	case catalog.MediaOwnerCategory:
		_, err = repos.Categories.FindByID(ctx, ownerID)
	case catalog.MediaOwnerBrand:
		_, err = repos.Brands.FindByID(ctx, ownerID)
	case catalog.MediaOwnerProduct:
		_, err = repos.Products.FindByID(ctx, ownerID)
	case catalog.MediaOwnerVariant:
		_, err = repos.Variants.FindByID(ctx, ownerID)
	default:
		return shared.NewFieldError("INVALID_INPUT", "owner_kind", "Unknown media owner kind")
	}
	return err
}

// applyOwnerURL stores the storage key on the owner's matching URL field
func (s *MediaService) applyOwnerURL(ctx context.Context, repos Repos, media *catalog.MediaObject) error {
	switch {
	case media.OwnerKind == catalog.MediaOwnerCategory && media.Purpose == catalog.MediaPurposeImage:
		category, err := repos.Categories.FindByID(ctx, media.OwnerID)
		if err != nil {
			return err
		}
		category.SetImageURL(media.StorageKey)
		return repos.Categories.Save(ctx, category)
	case media.OwnerKind == catalog.MediaOwnerCategory && media.Purpose == catalog.MediaPurposeBanner:
		category, err := repos.Categories.FindByID(ctx, media.OwnerID)
		if err != nil {
			return err
		}
		category.SetBannerURL(media.StorageKey)
		return repos.Categories.Save(ctx, category)
	case media.OwnerKind == catalog.MediaOwnerBrand && media.Purpose == catalog.MediaPurposeLogo:
		brand, err := repos.Brands.FindByID(ctx, media.OwnerID)
		if err != nil {
			return err
		}
		brand.SetLogoURL(media.StorageKey)
		return repos.Brands.Save(ctx, brand)
	default:
		return shared.NewFieldError("INVALID_INPUT", "purpose",
			fmt.Sprintf("Purpose %q does not apply to owner kind %q", media.Purpose, media.OwnerKind))
	}
}

func (s *MediaService) toResponse(ctx context.Context, media *catalog.MediaObject) (*MediaResponse, error) {
	url, _, err := s.storage.GenerateDownloadURL(ctx, media.StorageKey, s.config.DownloadURLExpiry)
	if err != nil {
		return nil, shared.NewDomainError("DOWNLOAD_URL_FAILED", "Failed to generate download URL")
	}

	return &MediaResponse{
		ID:          media.ID,
		OwnerKind:   string(media.OwnerKind),
		OwnerID:     media.OwnerID,
		Purpose:     string(media.Purpose),
		FileName:    media.FileName,
		ContentType: media.ContentType,
		SizeBytes:   media.SizeBytes,
		AltText:     media.AltText,
		IsPrimary:   media.IsPrimary,
		SortOrder:   media.SortOrder,
		URL:         url,
		CreatedAt:   media.CreatedAt,
	}, nil
}

// buildStorageKey namespaces objects by owner and randomizes the name so
// re-uploads never collide
func buildStorageKey(kind catalog.MediaOwnerKind, ownerID uuid.UUID, fileName string) string {
	ext := filepath.Ext(fileName)
	return fmt.Sprintf("%s/%s/%s%s", kind, ownerID, uuid.New(), ext)
}

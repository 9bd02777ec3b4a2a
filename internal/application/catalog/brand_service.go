package catalog

import (
	"context"

	"github.com/ecommerce/backend/internal/domain/catalog"
	"github.com/ecommerce/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// BrandService handles brand CRUD and lifecycle
type BrandService struct {
	repos Repos
	tx    TxManager
}

// NewBrandService creates a new BrandService
func NewBrandService(repos Repos, tx TxManager) *BrandService {
	return &BrandService{repos: repos, tx: tx}
}

// Create creates a brand. The slug is derived from the name once and
// deduplicated globally.
func (s *BrandService) Create(ctx context.Context, req CreateBrandRequest) (*BrandResponse, error) {
	var created *catalog.Brand

	err := s.tx.RunInTx(ctx, func(ctx context.Context, repos Repos) error {
		taken, err := repos.Brands.NameExists(ctx, req.Name, uuid.Nil)
		if err != nil {
			return err
		}
		if taken {
			return shared.NewFieldError("ALREADY_EXISTS", "name", "A brand with this name already exists")
		}

		slug, err := catalog.AllocateSlug(req.Name, func(candidate string) (bool, error) {
			return repos.Brands.SlugExists(ctx, candidate, uuid.Nil)
		})
		if err != nil {
			return err
		}

		brand, err := catalog.NewBrand(req.Name, slug)
		if err != nil {
			return err
		}

		if err := brand.SetDetails(req.Description, req.WebsiteURL, req.Country); err != nil {
			return err
		}
		if err := brand.SetFoundedYear(req.FoundedYear); err != nil {
			return err
		}
		if req.MetaTitle != "" || req.MetaDescription != "" {
			if err := brand.SetSEO(req.MetaTitle, req.MetaDescription); err != nil {
				return err
			}
		}
		if req.IsFeatured != nil {
			brand.SetFeatured(*req.IsFeatured)
		}
		if req.Priority != nil {
			brand.SetPriority(*req.Priority)
		}

		if err := repos.Brands.Save(ctx, brand); err != nil {
			return err
		}
		created = brand
		return nil
	})
	if err != nil {
		return nil, err
	}
	return ToBrandResponse(created), nil
}

// Update edits a brand. The slug never changes after creation.
func (s *BrandService) Update(ctx context.Context, id uuid.UUID, req UpdateBrandRequest) (*BrandResponse, error) {
	var updated *catalog.Brand

	err := s.tx.RunInTx(ctx, func(ctx context.Context, repos Repos) error {
		brand, err := repos.Brands.FindByID(ctx, id)
		if err != nil {
			return err
		}

		if req.Name != nil && *req.Name != brand.Name {
			taken, err := repos.Brands.NameExists(ctx, *req.Name, brand.ID)
			if err != nil {
				return err
			}
			if taken {
				return shared.NewFieldError("ALREADY_EXISTS", "name", "A brand with this name already exists")
			}
			if err := brand.Rename(*req.Name); err != nil {
				return err
			}
		}

		if req.Description != nil || req.WebsiteURL != nil || req.Country != nil {
			description := brand.Description
			website := brand.WebsiteURL
			country := brand.Country
			if req.Description != nil {
				description = *req.Description
			}
			if req.WebsiteURL != nil {
				website = *req.WebsiteURL
			}
			if req.Country != nil {
				country = *req.Country
			}
			if err := brand.SetDetails(description, website, country); err != nil {
				return err
			}
		}

		if req.ClearFounded {
			if err := brand.SetFoundedYear(nil); err != nil {
				return err
			}
		} else if req.FoundedYear != nil {
			if err := brand.SetFoundedYear(req.FoundedYear); err != nil {
				return err
			}
		}

		if req.MetaTitle != nil || req.MetaDescription != nil {
			title := brand.MetaTitle
			description := brand.MetaDescription
			if req.MetaTitle != nil {
				title = *req.MetaTitle
			}
			if req.MetaDescription != nil {
				description = *req.MetaDescription
			}
			if err := brand.SetSEO(title, description); err != nil {
				return err
			}
		}
		if req.IsFeatured != nil {
			brand.SetFeatured(*req.IsFeatured)
		}
		if req.Priority != nil {
			brand.SetPriority(*req.Priority)
		}

		if err := repos.Brands.Save(ctx, brand); err != nil {
			return err
		}
		updated = brand
		return nil
	})
	if err != nil {
		return nil, err
	}
	return ToBrandResponse(updated), nil
}

// Activate re-enables an inactive brand
func (s *BrandService) Activate(ctx context.Context, id uuid.UUID) (*BrandResponse, error) {
	var brand *catalog.Brand

	err := s.tx.RunInTx(ctx, func(ctx context.Context, repos Repos) error {
		var err error
		brand, err = repos.Brands.FindByID(ctx, id)
		if err != nil {
			return err
		}
		if err := brand.Activate(); err != nil {
			return err
		}
		return repos.Brands.Save(ctx, brand)
	})
	if err != nil {
		return nil, err
	}
	return ToBrandResponse(brand), nil
}

// Deactivate soft-deletes a brand; blocked while products reference it
func (s *BrandService) Deactivate(ctx context.Context, id uuid.UUID) (*BrandResponse, error) {
	var brand *catalog.Brand

	err := s.tx.RunInTx(ctx, func(ctx context.Context, repos Repos) error {
		var err error
		brand, err = repos.Brands.FindByID(ctx, id)
		if err != nil {
			return err
		}

		guard := NewDependencyGuard(repos)
		if err := guard.CheckBrandRemovable(ctx, brand.ID); err != nil {
			return err
		}

		if err := brand.Deactivate(); err != nil {
			return err
		}
		return repos.Brands.Save(ctx, brand)
	})
	if err != nil {
		return nil, err
	}
	return ToBrandResponse(brand), nil
}

// Delete permanently removes a brand. It must already be inactive and have
// no linked products.
func (s *BrandService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.tx.RunInTx(ctx, func(ctx context.Context, repos Repos) error {
		brand, err := repos.Brands.FindByID(ctx, id)
		if err != nil {
			return err
		}

		if brand.IsActive {
			return shared.NewDomainError("INVALID_STATE", "Brand must be deactivated before it can be deleted")
		}

		guard := NewDependencyGuard(repos)
		if err := guard.CheckBrandRemovable(ctx, brand.ID); err != nil {
			return err
		}

		return repos.Brands.Delete(ctx, brand.ID)
	})
}

// GetByID retrieves a brand by ID
func (s *BrandService) GetByID(ctx context.Context, id uuid.UUID) (*BrandResponse, error) {
	brand, err := s.repos.Brands.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return ToBrandResponse(brand), nil
}

// GetBySlug retrieves a brand by its slug
func (s *BrandService) GetBySlug(ctx context.Context, slug string) (*BrandResponse, error) {
	brand, err := s.repos.Brands.FindBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	return ToBrandResponse(brand), nil
}

// List retrieves brands matching the filter; featured brands sort first
func (s *BrandService) List(ctx context.Context, filter BrandListFilter) ([]BrandResponse, int64, error) {
	domainFilter := shared.Filter{
		Search:  filter.Search,
		Filters: make(map[string]interface{}),
	}
	if filter.ActiveOnly {
		domainFilter.Filters["is_active"] = true
	}
	if filter.FeaturedOnly {
		domainFilter.Filters["is_featured"] = true
	}
	if filter.Page > 0 && filter.PageSize > 0 {
		domainFilter.Page = filter.Page
		domainFilter.PageSize = filter.PageSize
	}

	brands, err := s.repos.Brands.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.repos.Brands.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	return ToBrandResponses(brands), total, nil
}

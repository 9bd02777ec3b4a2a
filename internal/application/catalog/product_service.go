package catalog

import (
	"context"
	"errors"

	"github.com/ecommerce/backend/internal/domain/catalog"
	"github.com/ecommerce/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// ProductService handles product CRUD, lifecycle, and related-product links
type ProductService struct {
	repos Repos
	tx    TxManager
}

// NewProductService creates a new ProductService
func NewProductService(repos Repos, tx TxManager) *ProductService {
	return &ProductService{repos: repos, tx: tx}
}

// Create creates a product with a globally unique, name-derived slug
func (s *ProductService) Create(ctx context.Context, req CreateProductRequest) (*ProductResponse, error) {
	var created *catalog.Product

	err := s.tx.RunInTx(ctx, func(ctx context.Context, repos Repos) error {
		if _, err := repos.Categories.FindByID(ctx, req.CategoryID); err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return shared.NewFieldError("INVALID_INPUT", "category_id", "Category not found")
			}
			return err
		}
		if req.BrandID != nil {
			if _, err := repos.Brands.FindByID(ctx, *req.BrandID); err != nil {
				if errors.Is(err, shared.ErrNotFound) {
					return shared.NewFieldError("INVALID_INPUT", "brand_id", "Brand not found")
				}
				return err
			}
		}

		slug, err := catalog.AllocateSlug(req.Name, func(candidate string) (bool, error) {
			return repos.Products.SlugExists(ctx, candidate, uuid.Nil)
		})
		if err != nil {
			return err
		}

		product, err := catalog.NewProduct(req.Name, slug, req.CategoryID)
		if err != nil {
			return err
		}

		if req.BrandID != nil {
			product.SetBrand(req.BrandID)
		}
		product.SetDescriptions(req.ShortDescription, req.Description)
		if req.MetaTitle != "" || req.MetaDescription != "" {
			if err := product.SetSEO(req.MetaTitle, req.MetaDescription); err != nil {
				return err
			}
		}
		if req.IsFeatured != nil {
			product.SetFeatured(*req.IsFeatured)
		}

		if err := repos.Products.Save(ctx, product); err != nil {
			return err
		}

		if len(req.RelatedIDs) > 0 {
			if err := s.replaceRelated(ctx, repos, product.ID, req.RelatedIDs); err != nil {
				return err
			}
		}

		created = product
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.enrich(ctx, created)
}

// Update edits a product. The slug never changes after creation.
func (s *ProductService) Update(ctx context.Context, id uuid.UUID, req UpdateProductRequest) (*ProductResponse, error) {
	var updated *catalog.Product

	err := s.tx.RunInTx(ctx, func(ctx context.Context, repos Repos) error {
		product, err := repos.Products.FindByID(ctx, id)
		if err != nil {
			return err
		}

		if req.Name != nil {
			if err := product.Rename(*req.Name); err != nil {
				return err
			}
		}
		if req.CategoryID != nil {
			if _, err := repos.Categories.FindByID(ctx, *req.CategoryID); err != nil {
				if errors.Is(err, shared.ErrNotFound) {
					return shared.NewFieldError("INVALID_INPUT", "category_id", "Category not found")
				}
				return err
			}
			if err := product.Recategorize(*req.CategoryID); err != nil {
				return err
			}
		}
		if req.ClearBrand {
			product.SetBrand(nil)
		} else if req.BrandID != nil {
			if _, err := repos.Brands.FindByID(ctx, *req.BrandID); err != nil {
				if errors.Is(err, shared.ErrNotFound) {
					return shared.NewFieldError("INVALID_INPUT", "brand_id", "Brand not found")
				}
				return err
			}
			product.SetBrand(req.BrandID)
		}
		if req.ShortDescription != nil || req.Description != nil {
			short := product.ShortDescription
			long := product.Description
			if req.ShortDescription != nil {
				short = *req.ShortDescription
			}
			if req.Description != nil {
				long = *req.Description
			}
			product.SetDescriptions(short, long)
		}
		if req.MetaTitle != nil || req.MetaDescription != nil {
			title := product.MetaTitle
			description := product.MetaDescription
			if req.MetaTitle != nil {
				title = *req.MetaTitle
			}
			if req.MetaDescription != nil {
				description = *req.MetaDescription
			}
			if err := product.SetSEO(title, description); err != nil {
				return err
			}
		}
		if req.IsFeatured != nil {
			product.SetFeatured(*req.IsFeatured)
		}

		if err := repos.Products.Save(ctx, product); err != nil {
			return err
		}

		if req.RelatedIDs != nil {
			if err := s.replaceRelated(ctx, repos, product.ID, req.RelatedIDs); err != nil {
				return err
			}
		}

		updated = product
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.enrich(ctx, updated)
}

// Activate re-enables an inactive product
func (s *ProductService) Activate(ctx context.Context, id uuid.UUID) (*ProductResponse, error) {
	product, err := s.toggleActive(ctx, id, true)
	if err != nil {
		return nil, err
	}
	return s.enrich(ctx, product)
}

// Deactivate soft-deletes a product
func (s *ProductService) Deactivate(ctx context.Context, id uuid.UUID) (*ProductResponse, error) {
	product, err := s.toggleActive(ctx, id, false)
	if err != nil {
		return nil, err
	}
	return s.enrich(ctx, product)
}

func (s *ProductService) toggleActive(ctx context.Context, id uuid.UUID, active bool) (*catalog.Product, error) {
	var product *catalog.Product

	err := s.tx.RunInTx(ctx, func(ctx context.Context, repos Repos) error {
		var err error
		product, err = repos.Products.FindByID(ctx, id)
		if err != nil {
			return err
		}
		if active {
			err = product.Activate()
		} else {
			err = product.Deactivate()
		}
		if err != nil {
			return err
		}
		return repos.Products.Save(ctx, product)
	})
	if err != nil {
		return nil, err
	}
	return product, nil
}

// Delete permanently removes a product. It must be inactive and have no
// active variants.
func (s *ProductService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.tx.RunInTx(ctx, func(ctx context.Context, repos Repos) error {
		product, err := repos.Products.FindByID(ctx, id)
		if err != nil {
			return err
		}

		guard := NewDependencyGuard(repos)
		if err := guard.CheckProductHardDeletable(ctx, product); err != nil {
			return err
		}

		return repos.Products.Delete(ctx, product.ID)
	})
}

// GetByID retrieves a product by ID, with rating and related links
func (s *ProductService) GetByID(ctx context.Context, id uuid.UUID) (*ProductResponse, error) {
	product, err := s.repos.Products.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.enrich(ctx, product)
}

// GetBySlug retrieves a product by its slug
func (s *ProductService) GetBySlug(ctx context.Context, slug string) (*ProductResponse, error) {
	product, err := s.repos.Products.FindBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	return s.enrich(ctx, product)
}

// List retrieves products matching the filter, with the total count
func (s *ProductService) List(ctx context.Context, filter ProductListFilter) ([]ProductListItem, int64, error) {
	domainFilter := shared.Filter{
		Search:   filter.Search,
		OrderBy:  "created_at",
		OrderDir: "desc",
		Filters:  make(map[string]interface{}),
	}
	if filter.OrderBy != "" {
		domainFilter.OrderBy = filter.OrderBy
		if filter.OrderDir != "" {
			domainFilter.OrderDir = filter.OrderDir
		} else {
			domainFilter.OrderDir = "asc"
		}
	}
	if filter.CategoryID != nil {
		domainFilter.Filters["category_id"] = *filter.CategoryID
	}
	if filter.BrandID != nil {
		domainFilter.Filters["brand_id"] = *filter.BrandID
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

	products, err := s.repos.Products.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.repos.Products.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	return ToProductListItems(products), total, nil
}

// GetRelated retrieves the full records of a product's related products
func (s *ProductService) GetRelated(ctx context.Context, id uuid.UUID) ([]ProductListItem, error) {
	relatedIDs, err := s.repos.Products.FindRelatedIDs(ctx, id)
	if err != nil {
		return nil, err
	}

	items := make([]ProductListItem, 0, len(relatedIDs))
	for _, rid := range relatedIDs {
		related, err := s.repos.Products.FindByID(ctx, rid)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				continue
			}
			return nil, err
		}
		items = append(items, ToProductListItems([]catalog.Product{*related})[0])
	}
	return items, nil
}

// replaceRelated validates the target products exist before linking them.
// Self-links are rejected.
func (s *ProductService) replaceRelated(ctx context.Context, repos Repos, productID uuid.UUID, relatedIDs []uuid.UUID) error {
	for _, rid := range relatedIDs {
		if rid == productID {
			return shared.NewFieldError("INVALID_INPUT", "related_ids", "A product cannot be related to itself")
		}
		if _, err := repos.Products.FindByID(ctx, rid); err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return shared.NewFieldError("INVALID_INPUT", "related_ids", "Related product not found")
			}
			return err
		}
	}
	return repos.Products.ReplaceRelated(ctx, productID, relatedIDs)
}

// enrich attaches the approved-review rating and related links
func (s *ProductService) enrich(ctx context.Context, product *catalog.Product) (*ProductResponse, error) {
	resp := ToProductResponse(product)

	avg, count, err := s.repos.Reviews.AverageRating(ctx, product.ID)
	if err != nil {
		return nil, err
	}
	resp.AverageRating = avg
	resp.ReviewCount = count

	relatedIDs, err := s.repos.Products.FindRelatedIDs(ctx, product.ID)
	if err != nil {
		return nil, err
	}
	resp.RelatedIDs = relatedIDs

	return resp, nil
}

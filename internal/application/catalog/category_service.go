package catalog

import (
	"context"
	"errors"

	"github.com/ecommerce/backend/internal/domain/catalog"
	"github.com/ecommerce/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// CategoryService owns the category tree: CRUD, reparenting, and the
// lifecycle transitions gated by the dependency guard. Every mutation runs
// in one transaction and invalidates the cached tree.
type CategoryService struct {
	repos Repos
	tx    TxManager
	cache TreeCache
}

// NewCategoryService creates a new CategoryService. cache may be nil.
func NewCategoryService(repos Repos, tx TxManager, cache TreeCache) *CategoryService {
	return &CategoryService{
		repos: repos,
		tx:    tx,
		cache: cache,
	}
}

// Create creates a category. The slug is derived from the name and
// deduplicated among siblings with a -N suffix.
func (s *CategoryService) Create(ctx context.Context, req CreateCategoryRequest) (*CategoryResponse, error) {
	var created *catalog.Category

	err := s.tx.RunInTx(ctx, func(ctx context.Context, repos Repos) error {
		var parent *catalog.Category
		var parentID *uuid.UUID

		if req.ParentID != nil {
			var err error
			parent, err = repos.Categories.FindByID(ctx, *req.ParentID)
			if err != nil {
				if errors.Is(err, shared.ErrNotFound) {
					return shared.NewFieldError("INVALID_INPUT", "parent_id", "Parent category not found")
				}
				return err
			}
			parentID = &parent.ID
		}

		taken, err := repos.Categories.SiblingNameExists(ctx, parentID, req.Name, uuid.Nil)
		if err != nil {
			return err
		}
		if taken {
			return shared.NewFieldError("ALREADY_EXISTS", "name", "A sibling category with this name already exists")
		}

		slug, err := catalog.AllocateSlug(req.Name, func(candidate string) (bool, error) {
			return repos.Categories.SiblingSlugExists(ctx, parentID, candidate, uuid.Nil)
		})
		if err != nil {
			return err
		}

		category, err := catalog.NewCategory(req.Name, slug, parent)
		if err != nil {
			return err
		}

		if req.Icon != "" {
			if err := category.SetIcon(req.Icon); err != nil {
				return err
			}
		}
		if req.MetaTitle != "" || req.MetaDescription != "" {
			if err := category.SetSEO(req.MetaTitle, req.MetaDescription); err != nil {
				return err
			}
		}
		if req.ShowInMenu != nil {
			category.SetShowInMenu(*req.ShowInMenu)
		}
		if req.SortOrder != nil {
			category.SetSortOrder(*req.SortOrder)
		}

		if err := repos.Categories.Save(ctx, category); err != nil {
			return err
		}

		created = category
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.invalidateTree(ctx)
	return ToCategoryResponse(created), nil
}

// Update edits a category. Renaming with an empty slug field re-derives the
// slug from the new name; a changed slug cascades a path recompute over the
// whole subtree inside the transaction.
func (s *CategoryService) Update(ctx context.Context, id uuid.UUID, req UpdateCategoryRequest) (*CategoryResponse, error) {
	var updated *catalog.Category

	err := s.tx.RunInTx(ctx, func(ctx context.Context, repos Repos) error {
		category, err := repos.Categories.FindByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}

		newSlug := category.Slug

		if req.Name != nil && *req.Name != category.Name {
			taken, err := repos.Categories.SiblingNameExists(ctx, category.ParentID, *req.Name, category.ID)
			if err != nil {
				return err
			}
			if taken {
				return shared.NewFieldError("ALREADY_EXISTS", "name", "A sibling category with this name already exists")
			}

			if err := category.Rename(*req.Name); err != nil {
				return err
			}

			if req.Slug == "" {
				newSlug, err = catalog.AllocateSlug(*req.Name, func(candidate string) (bool, error) {
					return repos.Categories.SiblingSlugExists(ctx, category.ParentID, candidate, category.ID)
				})
				if err != nil {
					return err
				}
			}
		}

		if req.Slug != "" {
			taken, err := repos.Categories.SiblingSlugExists(ctx, category.ParentID, req.Slug, category.ID)
			if err != nil {
				return err
			}
			if taken {
				return shared.NewFieldError("ALREADY_EXISTS", "slug", "A sibling category with this slug already exists")
			}
			newSlug = req.Slug
		}

		if newSlug != category.Slug {
			if err := s.changeSlugCascading(ctx, repos, category, newSlug); err != nil {
				return err
			}
		}

		if req.Icon != nil {
			if err := category.SetIcon(*req.Icon); err != nil {
				return err
			}
		}
		if req.MetaTitle != nil || req.MetaDescription != nil {
			title := category.MetaTitle
			description := category.MetaDescription
			if req.MetaTitle != nil {
				title = *req.MetaTitle
			}
			if req.MetaDescription != nil {
				description = *req.MetaDescription
			}
			if err := category.SetSEO(title, description); err != nil {
				return err
			}
		}
		if req.ShowInMenu != nil {
			category.SetShowInMenu(*req.ShowInMenu)
		}
		if req.SortOrder != nil {
			category.SetSortOrder(*req.SortOrder)
		}

		if err := repos.Categories.Save(ctx, category); err != nil {
			return err
		}

		updated = category
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.invalidateTree(ctx)
	return ToCategoryResponse(updated), nil
}

// Move reparents a category. The moved node and the new parent are row-locked
// before the cycle check so concurrent conflicting moves serialize; the whole
// subtree's paths are recomputed ancestor-first in the same transaction.
func (s *CategoryService) Move(ctx context.Context, id uuid.UUID, req MoveCategoryRequest) (*CategoryResponse, error) {
	var moved *catalog.Category

	err := s.tx.RunInTx(ctx, func(ctx context.Context, repos Repos) error {
		category, err := repos.Categories.FindByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}

		var parent *catalog.Category
		var parentID *uuid.UUID

		if req.ParentID != nil {
			if *req.ParentID == category.ID {
				return shared.NewDomainError(shared.ErrCodeCycle, "A category cannot be its own parent")
			}

			parent, err = repos.Categories.FindByIDForUpdate(ctx, *req.ParentID)
			if err != nil {
				if errors.Is(err, shared.ErrNotFound) {
					return shared.NewFieldError("INVALID_INPUT", "parent_id", "Parent category not found")
				}
				return err
			}

			if category.IsAncestorOf(parent) {
				return shared.NewDomainError(shared.ErrCodeCycle, "Cannot move a category under its own descendant")
			}
			parentID = &parent.ID
		}

		if category.ParentID != nil && parentID != nil && *category.ParentID == *parentID {
			moved = category
			return nil // no-op move
		}
		if category.ParentID == nil && parentID == nil {
			moved = category
			return nil
		}

		taken, err := repos.Categories.SiblingNameExists(ctx, parentID, category.Name, category.ID)
		if err != nil {
			return err
		}
		if taken {
			return shared.NewFieldError("ALREADY_EXISTS", "name", "The target parent already has a category with this name")
		}

		// the slug stays stable on move unless it collides under the new
		// parent, in which case it is reallocated with a suffix
		slug := category.Slug
		slugTaken, err := repos.Categories.SiblingSlugExists(ctx, parentID, slug, category.ID)
		if err != nil {
			return err
		}
		if slugTaken {
			slug, err = catalog.AllocateSlug(category.Name, func(candidate string) (bool, error) {
				return repos.Categories.SiblingSlugExists(ctx, parentID, candidate, category.ID)
			})
			if err != nil {
				return err
			}
		}

		oldPath := category.Path
		oldLevel := category.Level

		descendants, err := repos.Categories.FindDescendants(ctx, category)
		if err != nil {
			return err
		}

		category.MoveUnder(parent)
		if slug != category.Slug {
			parentPath := ""
			if parent != nil {
				parentPath = parent.Path
			}
			if err := category.ChangeSlug(slug, parentPath); err != nil {
				return err
			}
		}

		levelDelta := category.Level - oldLevel
		for i := range descendants {
			descendants[i].Path = catalog.ReplacePathPrefix(descendants[i].Path, oldPath, category.Path)
			descendants[i].Level += levelDelta
		}

		if err := repos.Categories.Save(ctx, category); err != nil {
			return err
		}
		if err := repos.Categories.SavePaths(ctx, descendants); err != nil {
			return err
		}

		moved = category
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.invalidateTree(ctx)
	return ToCategoryResponse(moved), nil
}

// Activate re-enables an inactive category
func (s *CategoryService) Activate(ctx context.Context, id uuid.UUID) (*CategoryResponse, error) {
	var category *catalog.Category

	err := s.tx.RunInTx(ctx, func(ctx context.Context, repos Repos) error {
		var err error
		category, err = repos.Categories.FindByID(ctx, id)
		if err != nil {
			return err
		}
		if err := category.Activate(); err != nil {
			return err
		}
		return repos.Categories.Save(ctx, category)
	})
	if err != nil {
		return nil, err
	}

	s.invalidateTree(ctx)
	return ToCategoryResponse(category), nil
}

// Deactivate soft-deletes a category; blocked while it has active children
// or linked products
func (s *CategoryService) Deactivate(ctx context.Context, id uuid.UUID) (*CategoryResponse, error) {
	var category *catalog.Category

	err := s.tx.RunInTx(ctx, func(ctx context.Context, repos Repos) error {
		var err error
		category, err = repos.Categories.FindByID(ctx, id)
		if err != nil {
			return err
		}

		guard := NewDependencyGuard(repos)
		if err := guard.CheckCategoryRemovable(ctx, category.ID); err != nil {
			return err
		}

		if err := category.Deactivate(); err != nil {
			return err
		}
		return repos.Categories.Save(ctx, category)
	})
	if err != nil {
		return nil, err
	}

	s.invalidateTree(ctx)
	return ToCategoryResponse(category), nil
}

// Delete permanently removes a category. It must already be inactive and
// pass the same dependency checks as deactivation.
func (s *CategoryService) Delete(ctx context.Context, id uuid.UUID) error {
	err := s.tx.RunInTx(ctx, func(ctx context.Context, repos Repos) error {
		category, err := repos.Categories.FindByID(ctx, id)
		if err != nil {
			return err
		}

		if category.IsActive {
			return shared.NewDomainError("INVALID_STATE", "Category must be deactivated before it can be deleted")
		}

		guard := NewDependencyGuard(repos)
		if err := guard.CheckCategoryRemovable(ctx, category.ID); err != nil {
			return err
		}

		return repos.Categories.Delete(ctx, category.ID)
	})
	if err != nil {
		return err
	}

	s.invalidateTree(ctx)
	return nil
}

// GetByID retrieves a category by ID
func (s *CategoryService) GetByID(ctx context.Context, id uuid.UUID) (*CategoryResponse, error) {
	category, err := s.repos.Categories.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return ToCategoryResponse(category), nil
}

// GetByPath retrieves a category by its materialized path,
// e.g. "electronics/mobiles". Inactive categories are not addressable by
// path; they report NotFound like a missing one.
func (s *CategoryService) GetByPath(ctx context.Context, path string) (*CategoryResponse, error) {
	category, err := s.repos.Categories.FindByPath(ctx, path)
	if err != nil {
		return nil, err
	}
	if !category.IsActive {
		return nil, shared.ErrNotFound
	}
	return ToCategoryResponse(category), nil
}

// List retrieves categories matching the filter, with the total count
func (s *CategoryService) List(ctx context.Context, filter CategoryListFilter) ([]CategoryResponse, int64, error) {
	domainFilter := shared.Filter{
		Search:   filter.Search,
		OrderBy:  "sort_order",
		OrderDir: "asc",
		Filters:  make(map[string]interface{}),
	}
	if filter.ActiveOnly {
		domainFilter.Filters["is_active"] = true
	}
	if filter.Page > 0 && filter.PageSize > 0 {
		domainFilter.Page = filter.Page
		domainFilter.PageSize = filter.PageSize
	}

	categories, err := s.repos.Categories.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.repos.Categories.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	return ToCategoryResponses(categories), total, nil
}

// GetChildren retrieves the direct children of a category
func (s *CategoryService) GetChildren(ctx context.Context, parentID uuid.UUID) ([]CategoryResponse, error) {
	children, err := s.repos.Categories.FindChildren(ctx, parentID)
	if err != nil {
		return nil, err
	}
	return ToCategoryResponses(children), nil
}

// GetRoots retrieves all root categories
func (s *CategoryService) GetRoots(ctx context.Context) ([]CategoryResponse, error) {
	roots, err := s.repos.Categories.FindRoots(ctx)
	if err != nil {
		return nil, err
	}
	return ToCategoryResponses(roots), nil
}

// GetTree returns the active category hierarchy, cached between mutations.
// Inactive categories and their subtrees are excluded: the filter drops the
// nodes and buildCategoryTree drops any children orphaned by it.
func (s *CategoryService) GetTree(ctx context.Context) ([]CategoryTreeNode, error) {
	if s.cache != nil {
		if tree, ok := s.cache.GetTree(ctx); ok {
			return tree, nil
		}
	}

	categories, err := s.repos.Categories.FindAll(ctx, shared.Filter{
		OrderBy:  "sort_order",
		OrderDir: "asc",
		Filters:  map[string]interface{}{"is_active": true},
	})
	if err != nil {
		return nil, err
	}

	tree := buildCategoryTree(categories)
	if s.cache != nil {
		s.cache.SetTree(ctx, tree)
	}
	return tree, nil
}

// GetBreadcrumb returns the ancestor chain root-to-self plus the display
// string ("Electronics > Mobiles > Smartphones")
func (s *CategoryService) GetBreadcrumb(ctx context.Context, id uuid.UUID) ([]CategoryResponse, string, error) {
	category, err := s.repos.Categories.FindByID(ctx, id)
	if err != nil {
		return nil, "", err
	}

	chain, err := s.repos.Categories.FindAncestors(ctx, category, true)
	if err != nil {
		return nil, "", err
	}

	names := make([]string, len(chain))
	for i := range chain {
		names[i] = chain[i].Name
	}
	return ToCategoryResponses(chain), catalog.DisplayPath(names), nil
}

// changeSlugCascading swaps the slug and rewrites the subtree's paths,
// ancestor-first. Must run inside the caller's transaction.
func (s *CategoryService) changeSlugCascading(ctx context.Context, repos Repos, category *catalog.Category, slug string) error {
	parentPath := ""
	if category.ParentID != nil {
		parent, err := repos.Categories.FindByID(ctx, *category.ParentID)
		if err != nil {
			return err
		}
		parentPath = parent.Path
	}

	oldPath := category.Path
	descendants, err := repos.Categories.FindDescendants(ctx, category)
	if err != nil {
		return err
	}

	if err := category.ChangeSlug(slug, parentPath); err != nil {
		return err
	}

	for i := range descendants {
		descendants[i].Path = catalog.ReplacePathPrefix(descendants[i].Path, oldPath, category.Path)
	}
	return repos.Categories.SavePaths(ctx, descendants)
}

func (s *CategoryService) invalidateTree(ctx context.Context) {
	if s.cache != nil {
		s.cache.Invalidate(ctx)
	}
}

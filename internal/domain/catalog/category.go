package catalog

import (
	"strings"

	"github.com/ecommerce/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Category is a node in the hierarchical product catalog.
// Structure is held as a parent pointer; the slug-based materialized path
// is a denormalized index kept in sync transactionally on every structural
// change.
type Category struct {
	shared.BaseAggregateRoot
	Name     string     `gorm:"type:varchar(200);not null"`
	Slug     string     `gorm:"type:varchar(250);not null;index"`
	ParentID *uuid.UUID `gorm:"type:uuid;index"`
	// Path is the slug chain from root to this node, globally unique
	Path  string `gorm:"type:varchar(1000);not null;uniqueIndex"`
	Level int    `gorm:"not null;default:0"`

	Icon      string `gorm:"type:varchar(100)"`
	ImageURL  string `gorm:"type:varchar(500)"`
	BannerURL string `gorm:"type:varchar(500)"`

	MetaTitle       string `gorm:"type:varchar(200)"`
	MetaDescription string `gorm:"type:text"`

	IsActive   bool `gorm:"not null;default:true"`
	ShowInMenu bool `gorm:"not null;default:true"`
	SortOrder  int  `gorm:"not null;default:0"`
}

// TableName returns the table name for GORM
func (Category) TableName() string {
	return "categories"
}

// NewCategory creates a category with an already-allocated slug.
// Pass a nil parent for a root category.
func NewCategory(name, slug string, parent *Category) (*Category, error) {
	if err := validateCategoryName(name); err != nil {
		return nil, err
	}
	if err := validateSlug(slug); err != nil {
		return nil, err
	}

	category := &Category{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              strings.TrimSpace(name),
		Slug:              slug,
		IsActive:          true,
		ShowInMenu:        true,
	}

	if parent != nil {
		category.ParentID = &parent.ID
		category.Level = parent.Level + 1
		category.Path = BuildPath(parent.Path, slug)
	} else {
		category.Path = BuildPath("", slug)
	}

	return category, nil
}

// Rename changes the display name. The slug is not touched here; callers
// decide whether to reallocate it and then call ChangeSlug.
func (c *Category) Rename(name string) error {
	if err := validateCategoryName(name); err != nil {
		return err
	}

	c.Name = strings.TrimSpace(name)
	c.Touch()
	c.IncrementVersion()
	return nil
}

// ChangeSlug replaces the slug and recomputes this node's own path from the
// given parent path. Descendant paths must be recomputed by the caller in
// the same transaction.
func (c *Category) ChangeSlug(slug, parentPath string) error {
	if err := validateSlug(slug); err != nil {
		return err
	}

	c.Slug = slug
	c.Path = BuildPath(parentPath, slug)
	c.Touch()
	c.IncrementVersion()
	return nil
}

// MoveUnder reparents the category. Pass nil to make it a root.
// Cycle checks happen in the application layer against the persisted tree;
// this method only rewires the node and recomputes its own path.
func (c *Category) MoveUnder(parent *Category) {
	if parent != nil {
		c.ParentID = &parent.ID
		c.Level = parent.Level + 1
		c.Path = BuildPath(parent.Path, c.Slug)
	} else {
		c.ParentID = nil
		c.Level = 0
		c.Path = BuildPath("", c.Slug)
	}
	c.Touch()
	c.IncrementVersion()
}

// SetSortOrder sets the display order among siblings
func (c *Category) SetSortOrder(order int) {
	c.SortOrder = order
	c.Touch()
	c.IncrementVersion()
}

// SetIcon sets the icon identifier shown in menus
func (c *Category) SetIcon(icon string) error {
	if len(icon) > 100 {
		return shared.NewFieldError("INVALID_INPUT", "icon", "Icon cannot exceed 100 characters")
	}
	c.Icon = icon
	c.Touch()
	c.IncrementVersion()
	return nil
}

// SetSEO sets the meta title and description
func (c *Category) SetSEO(title, description string) error {
	if len(title) > 200 {
		return shared.NewFieldError("INVALID_INPUT", "meta_title", "Meta title cannot exceed 200 characters")
	}
	c.MetaTitle = title
	c.MetaDescription = description
	c.Touch()
	c.IncrementVersion()
	return nil
}

// SetImageURL stores the blob-store reference for the category image
func (c *Category) SetImageURL(url string) {
	c.ImageURL = url
	c.Touch()
	c.IncrementVersion()
}

// SetBannerURL stores the blob-store reference for the category banner
func (c *Category) SetBannerURL(url string) {
	c.BannerURL = url
	c.Touch()
	c.IncrementVersion()
}

// SetShowInMenu toggles menu visibility
func (c *Category) SetShowInMenu(show bool) {
	c.ShowInMenu = show
	c.Touch()
	c.IncrementVersion()
}

// Activate re-enables a soft-deleted category
func (c *Category) Activate() error {
	if c.IsActive {
		return shared.NewDomainError("INVALID_STATE", "Category is already active")
	}
	c.IsActive = true
	c.Touch()
	c.IncrementVersion()
	return nil
}

// Deactivate soft-deletes the category. Dependency checks (active children,
// linked products) are enforced by the application layer before calling.
func (c *Category) Deactivate() error {
	if !c.IsActive {
		return shared.NewDomainError("INVALID_STATE", "Category is already inactive")
	}
	c.IsActive = false
	c.Touch()
	c.IncrementVersion()
	return nil
}

// IsRoot returns true if this is a root category
func (c *Category) IsRoot() bool {
	return c.ParentID == nil
}

// IsAncestorOf returns true if this category is a strict ancestor of other
func (c *Category) IsAncestorOf(other *Category) bool {
	if other == nil || other.Path == "" {
		return false
	}
	return strings.HasPrefix(other.Path, c.Path+PathSeparator)
}

// IsDescendantOf returns true if this category is a strict descendant of other
func (c *Category) IsDescendantOf(other *Category) bool {
	if other == nil {
		return false
	}
	return other.IsAncestorOf(c)
}

func validateCategoryName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewFieldError("INVALID_INPUT", "name", "Category name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewFieldError("INVALID_INPUT", "name", "Category name cannot exceed 200 characters")
	}
	return nil
}

func validateSlug(slug string) error {
	if slug == "" {
		return shared.NewFieldError("INVALID_INPUT", "slug", "Slug cannot be empty")
	}
	if len(slug) > 250 {
		return shared.NewFieldError("INVALID_INPUT", "slug", "Slug cannot exceed 250 characters")
	}
	for _, r := range slug {
		if !((r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '-') {
			return shared.NewFieldError("INVALID_INPUT", "slug", "Slug may only contain lowercase letters, digits, and hyphens")
		}
	}
	return nil
}

package catalog

import (
	"time"

	"github.com/ecommerce/backend/internal/domain/catalog"
	"github.com/google/uuid"
)

// CreateCategoryRequest represents a request to create a category
type CreateCategoryRequest struct {
	Name            string     `json:"name" binding:"required,min=1,max=200"`
	ParentID        *uuid.UUID `json:"parent_id"`
	Icon            string     `json:"icon" binding:"max=100"`
	MetaTitle       string     `json:"meta_title" binding:"max=200"`
	MetaDescription string     `json:"meta_description"`
	ShowInMenu      *bool      `json:"show_in_menu"`
	SortOrder       *int       `json:"sort_order"`
}

// UpdateCategoryRequest represents a request to update a category.
// An empty Slug with a changed Name re-derives the slug from the new name;
// a non-empty Slug is kept verbatim.
type UpdateCategoryRequest struct {
	Name            *string `json:"name" binding:"omitempty,min=1,max=200"`
	Slug            string  `json:"slug" binding:"omitempty,max=250"`
	Icon            *string `json:"icon" binding:"omitempty,max=100"`
	MetaTitle       *string `json:"meta_title" binding:"omitempty,max=200"`
	MetaDescription *string `json:"meta_description"`
	ShowInMenu      *bool   `json:"show_in_menu"`
	SortOrder       *int    `json:"sort_order"`
}

// MoveCategoryRequest represents a request to reparent a category.
// A nil ParentID moves it to the root level.
type MoveCategoryRequest struct {
	ParentID *uuid.UUID `json:"parent_id"`
}

// CategoryListFilter represents filter options for category lists
type CategoryListFilter struct {
	Search     string `form:"search"`
	ActiveOnly bool   `form:"active_only"`
	Page       int    `form:"page" binding:"omitempty,min=1"`
	PageSize   int    `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// CategoryResponse represents a category in API responses
type CategoryResponse struct {
	ID              uuid.UUID  `json:"id"`
	Name            string     `json:"name"`
	Slug            string     `json:"slug"`
	ParentID        *uuid.UUID `json:"parent_id"`
	Path            string     `json:"path"`
	Level           int        `json:"level"`
	Icon            string     `json:"icon"`
	ImageURL        string     `json:"image_url"`
	BannerURL       string     `json:"banner_url"`
	MetaTitle       string     `json:"meta_title"`
	MetaDescription string     `json:"meta_description"`
	IsActive        bool       `json:"is_active"`
	ShowInMenu      bool       `json:"show_in_menu"`
	SortOrder       int        `json:"sort_order"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
	Version         int        `json:"version"`
}

// CategoryTreeNode represents a category with its nested children
type CategoryTreeNode struct {
	ID         uuid.UUID          `json:"id"`
	Name       string             `json:"name"`
	Slug       string             `json:"slug"`
	Path       string             `json:"path"`
	Level      int                `json:"level"`
	Icon       string             `json:"icon"`
	IsActive   bool               `json:"is_active"`
	ShowInMenu bool               `json:"show_in_menu"`
	SortOrder  int                `json:"sort_order"`
	Children   []CategoryTreeNode `json:"children"`
}

// ToCategoryResponse converts a domain Category to CategoryResponse
func ToCategoryResponse(c *catalog.Category) *CategoryResponse {
	return &CategoryResponse{
		ID:              c.ID,
		Name:            c.Name,
		Slug:            c.Slug,
		ParentID:        c.ParentID,
		Path:            c.Path,
		Level:           c.Level,
		Icon:            c.Icon,
		ImageURL:        c.ImageURL,
		BannerURL:       c.BannerURL,
		MetaTitle:       c.MetaTitle,
		MetaDescription: c.MetaDescription,
		IsActive:        c.IsActive,
		ShowInMenu:      c.ShowInMenu,
		SortOrder:       c.SortOrder,
		CreatedAt:       c.CreatedAt,
		UpdatedAt:       c.UpdatedAt,
		Version:         c.Version,
	}
}

// ToCategoryResponses converts a slice of domain Categories
func ToCategoryResponses(categories []catalog.Category) []CategoryResponse {
	responses := make([]CategoryResponse, len(categories))
	for i := range categories {
		responses[i] = *ToCategoryResponse(&categories[i])
	}
	return responses
}

// buildCategoryTree nests a flat, (sort_order, name)-ordered category list
// into parent/children form. Orphans (parent missing from the list, e.g.
// filtered out as inactive) are dropped along with their subtrees.
func buildCategoryTree(categories []catalog.Category) []CategoryTreeNode {
	byParent := make(map[uuid.UUID][]*catalog.Category)
	var roots []*catalog.Category
	for i := range categories {
		c := &categories[i]
		if c.ParentID == nil {
			roots = append(roots, c)
		} else {
			byParent[*c.ParentID] = append(byParent[*c.ParentID], c)
		}
	}

	var materialize func(c *catalog.Category) CategoryTreeNode
	materialize = func(c *catalog.Category) CategoryTreeNode {
		node := CategoryTreeNode{
			ID:         c.ID,
			Name:       c.Name,
			Slug:       c.Slug,
			Path:       c.Path,
			Level:      c.Level,
			Icon:       c.Icon,
			IsActive:   c.IsActive,
			ShowInMenu: c.ShowInMenu,
			SortOrder:  c.SortOrder,
			Children:   []CategoryTreeNode{},
		}
		for _, child := range byParent[c.ID] {
			node.Children = append(node.Children, materialize(child))
		}
		return node
	}

	tree := make([]CategoryTreeNode, 0, len(roots))
	for _, root := range roots {
		tree = append(tree, materialize(root))
	}
	return tree
}

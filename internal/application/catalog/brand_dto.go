package catalog

import (
	"time"

	"github.com/ecommerce/backend/internal/domain/catalog"
	"github.com/google/uuid"
)

// CreateBrandRequest represents a request to create a brand
type CreateBrandRequest struct {
	Name            string `json:"name" binding:"required,min=1,max=200"`
	Description     string `json:"description"`
	WebsiteURL      string `json:"website_url" binding:"omitempty,url,max=500"`
	Country         string `json:"country" binding:"max=100"`
	FoundedYear     *int   `json:"founded_year"`
	MetaTitle       string `json:"meta_title" binding:"max=200"`
	MetaDescription string `json:"meta_description"`
	IsFeatured      *bool  `json:"is_featured"`
	Priority        *int   `json:"priority"`
}

// UpdateBrandRequest represents a request to update a brand
type UpdateBrandRequest struct {
	Name            *string `json:"name" binding:"omitempty,min=1,max=200"`
	Description     *string `json:"description"`
	WebsiteURL      *string `json:"website_url" binding:"omitempty,url,max=500"`
	Country         *string `json:"country" binding:"omitempty,max=100"`
	FoundedYear     *int    `json:"founded_year"`
	ClearFounded    bool    `json:"clear_founded_year"`
	MetaTitle       *string `json:"meta_title" binding:"omitempty,max=200"`
	MetaDescription *string `json:"meta_description"`
	IsFeatured      *bool   `json:"is_featured"`
	Priority        *int    `json:"priority"`
}

// BrandListFilter represents filter options for brand lists
type BrandListFilter struct {
	Search       string `form:"search"`
	ActiveOnly   bool   `form:"active_only"`
	FeaturedOnly bool   `form:"featured_only"`
	Page         int    `form:"page" binding:"omitempty,min=1"`
	PageSize     int    `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// BrandResponse represents a brand in API responses
type BrandResponse struct {
	ID              uuid.UUID `json:"id"`
	Name            string    `json:"name"`
	Slug            string    `json:"slug"`
	Description     string    `json:"description"`
	WebsiteURL      string    `json:"website_url"`
	LogoURL         string    `json:"logo_url"`
	Country         string    `json:"country"`
	FoundedYear     *int      `json:"founded_year"`
	MetaTitle       string    `json:"meta_title"`
	MetaDescription string    `json:"meta_description"`
	IsActive        bool      `json:"is_active"`
	IsFeatured      bool      `json:"is_featured"`
	Priority        int       `json:"priority"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
	Version         int       `json:"version"`
}

// ToBrandResponse converts a domain Brand to BrandResponse
func ToBrandResponse(b *catalog.Brand) *BrandResponse {
	return &BrandResponse{
		ID:              b.ID,
		Name:            b.Name,
		Slug:            b.Slug,
		Description:     b.Description,
		WebsiteURL:      b.WebsiteURL,
		LogoURL:         b.LogoURL,
		Country:         b.Country,
		FoundedYear:     b.FoundedYear,
		MetaTitle:       b.MetaTitle,
		MetaDescription: b.MetaDescription,
		IsActive:        b.IsActive,
		IsFeatured:      b.IsFeatured,
		Priority:        b.Priority,
		CreatedAt:       b.CreatedAt,
		UpdatedAt:       b.UpdatedAt,
		Version:         b.Version,
	}
}

// ToBrandResponses converts a slice of domain Brands
func ToBrandResponses(brands []catalog.Brand) []BrandResponse {
	responses := make([]BrandResponse, len(brands))
	for i := range brands {
		responses[i] = *ToBrandResponse(&brands[i])
	}
	return responses
}

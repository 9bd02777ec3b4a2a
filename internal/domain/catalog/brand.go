package catalog

import (
	"strings"
	"time"

	"github.com/ecommerce/backend/internal/domain/shared"
)

// Brand represents a product manufacturer or label
type Brand struct {
	shared.BaseAggregateRoot
	Name string `gorm:"type:varchar(200);not null;uniqueIndex"`
	// Slug is assigned once at creation and never regenerated
	Slug        string `gorm:"type:varchar(250);not null;uniqueIndex"`
	Description string `gorm:"type:text"`
	WebsiteURL  string `gorm:"type:varchar(500)"`
	LogoURL     string `gorm:"type:varchar(500)"`
	Country     string `gorm:"type:varchar(100)"`
	FoundedYear *int   `gorm:""`

	MetaTitle       string `gorm:"type:varchar(200)"`
	MetaDescription string `gorm:"type:text"`

	IsActive   bool `gorm:"not null;default:true"`
	IsFeatured bool `gorm:"not null;default:false"`
	Priority   int  `gorm:"not null;default:0"`
}

// TableName returns the table name for GORM
func (Brand) TableName() string {
	return "brands"
}

// NewBrand creates a brand with an already-allocated slug
func NewBrand(name, slug string) (*Brand, error) {
	if err := validateBrandName(name); err != nil {
		return nil, err
	}
	if err := validateSlug(slug); err != nil {
		return nil, err
	}

	return &Brand{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              strings.TrimSpace(name),
		Slug:              slug,
		IsActive:          true,
	}, nil
}

// Rename changes the display name; the slug stays as assigned at creation
func (b *Brand) Rename(name string) error {
	if err := validateBrandName(name); err != nil {
		return err
	}
	b.Name = strings.TrimSpace(name)
	b.Touch()
	b.IncrementVersion()
	return nil
}

// SetDetails updates descriptive fields
func (b *Brand) SetDetails(description, websiteURL, country string) error {
	if len(country) > 100 {
		return shared.NewFieldError("INVALID_INPUT", "country", "Country cannot exceed 100 characters")
	}
	b.Description = description
	b.WebsiteURL = websiteURL
	b.Country = country
	b.Touch()
	b.IncrementVersion()
	return nil
}

// SetFoundedYear validates the year is not in the future before storing it
func (b *Brand) SetFoundedYear(year *int) error {
	if year != nil && *year > time.Now().Year() {
		return shared.NewFieldError("INVALID_INPUT", "founded_year", "Founded year cannot be in the future")
	}
	b.FoundedYear = year
	b.Touch()
	b.IncrementVersion()
	return nil
}

// SetSEO sets the meta title and description
func (b *Brand) SetSEO(title, description string) error {
	if len(title) > 200 {
		return shared.NewFieldError("INVALID_INPUT", "meta_title", "Meta title cannot exceed 200 characters")
	}
	b.MetaTitle = title
	b.MetaDescription = description
	b.Touch()
	b.IncrementVersion()
	return nil
}

// SetLogoURL stores the blob-store reference for the brand logo
func (b *Brand) SetLogoURL(url string) {
	b.LogoURL = url
	b.Touch()
	b.IncrementVersion()
}

// SetFeatured toggles the featured flag used for ordering
func (b *Brand) SetFeatured(featured bool) {
	b.IsFeatured = featured
	b.Touch()
	b.IncrementVersion()
}

// SetPriority sets the ordering priority among featured brands
func (b *Brand) SetPriority(priority int) {
	b.Priority = priority
	b.Touch()
	b.IncrementVersion()
}

// Activate re-enables a soft-deleted brand
func (b *Brand) Activate() error {
	if b.IsActive {
		return shared.NewDomainError("INVALID_STATE", "Brand is already active")
	}
	b.IsActive = true
	b.Touch()
	b.IncrementVersion()
	return nil
}

// Deactivate soft-deletes the brand. Linked-product checks are enforced by
// the application layer before calling.
func (b *Brand) Deactivate() error {
	if !b.IsActive {
		return shared.NewDomainError("INVALID_STATE", "Brand is already inactive")
	}
	b.IsActive = false
	b.Touch()
	b.IncrementVersion()
	return nil
}

func validateBrandName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewFieldError("INVALID_INPUT", "name", "Brand name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewFieldError("INVALID_INPUT", "name", "Brand name cannot exceed 200 characters")
	}
	return nil
}

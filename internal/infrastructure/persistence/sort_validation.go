package persistence

import (
	"strings"
)

// ValidateSortOrder validates and normalizes the sort order to ASC or DESC.
// Returns "DESC" as the default if the input is invalid or empty.
func ValidateSortOrder(orderDir string) string {
	normalized := strings.ToUpper(strings.TrimSpace(orderDir))
	if normalized == "ASC" {
		return "ASC"
	}
	return "DESC"
}

// ValidateSortField validates the sort field against a whitelist of allowed fields.
// Returns the defaultField if the input is invalid, empty, or not in the whitelist.
func ValidateSortField(sortField string, allowedFields map[string]bool, defaultField string) string {
	trimmed := strings.TrimSpace(sortField)
	if trimmed == "" {
		return defaultField
	}
	if allowedFields[trimmed] {
		return trimmed
	}
	return defaultField
}

// CategorySortFields contains allowed sort fields for categories
var CategorySortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
	"name":       true,
	"slug":       true,
	"path":       true,
	"parent_id":  true,
	"level":      true,
	"sort_order": true,
	"is_active":  true,
}

// BrandSortFields contains allowed sort fields for brands
var BrandSortFields = map[string]bool{
	"id":           true,
	"created_at":   true,
	"updated_at":   true,
	"name":         true,
	"slug":         true,
	"country":      true,
	"priority":     true,
	"is_active":    true,
	"is_featured":  true,
	"founded_year": true,
}

// ProductSortFields contains allowed sort fields for products
var ProductSortFields = map[string]bool{
	"id":          true,
	"created_at":  true,
	"updated_at":  true,
	"name":        true,
	"slug":        true,
	"category_id": true,
	"brand_id":    true,
	"is_active":   true,
	"is_featured": true,
}

// VariantSortFields contains allowed sort fields for product variants
var VariantSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
	"sku":        true,
	"price":      true,
	"sale_price": true,
	"stock":      true,
	"is_active":  true,
}

// ReviewSortFields contains allowed sort fields for product reviews
var ReviewSortFields = map[string]bool{
	"id":          true,
	"created_at":  true,
	"updated_at":  true,
	"rating":      true,
	"is_approved": true,
}

// UserSortFields contains allowed sort fields for users
var UserSortFields = map[string]bool{
	"id":            true,
	"created_at":    true,
	"updated_at":    true,
	"email":         true,
	"username":      true,
	"first_name":    true,
	"last_name":     true,
	"is_staff":      true,
	"is_active":     true,
	"last_login_at": true,
}

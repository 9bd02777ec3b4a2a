package persistence

import (
	"context"

	catalogapp "github.com/ecommerce/backend/internal/application/catalog"
	identityapp "github.com/ecommerce/backend/internal/application/identity"
	"gorm.io/gorm"
)

// NewCatalogRepos binds the full catalog repository set to a connection
func NewCatalogRepos(db *gorm.DB) catalogapp.Repos {
	return catalogapp.Repos{
		Categories: NewGormCategoryRepository(db),
		Brands:     NewGormBrandRepository(db),
		Products:   NewGormProductRepository(db),
		Variants:   NewGormVariantRepository(db),
		Attributes: NewGormAttributeRepository(db),
		Reviews:    NewGormReviewRepository(db),
		Media:      NewGormMediaRepository(db),
	}
}

// NewIdentityRepos binds the identity repository set to a connection
func NewIdentityRepos(db *gorm.DB) identityapp.Repos {
	return identityapp.Repos{
		Users:     NewGormUserRepository(db),
		Addresses: NewGormAddressRepository(db),
	}
}

// CatalogTxManager runs catalog mutations in a database transaction. The
// callback receives repositories rebound to the transaction connection, so
// every access inside the callback commits or rolls back together.
type CatalogTxManager struct {
	db *Database
}

// NewCatalogTxManager creates a transaction manager for catalog services
func NewCatalogTxManager(db *Database) *CatalogTxManager {
	return &CatalogTxManager{db: db}
}

// RunInTx executes fn within a transaction
func (m *CatalogTxManager) RunInTx(ctx context.Context, fn func(ctx context.Context, repos catalogapp.Repos) error) error {
	return m.db.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(ctx, NewCatalogRepos(tx))
	})
}

// IdentityTxManager runs identity mutations in a database transaction
type IdentityTxManager struct {
	db *Database
}

// NewIdentityTxManager creates a transaction manager for identity services
func NewIdentityTxManager(db *Database) *IdentityTxManager {
	return &IdentityTxManager{db: db}
}

// RunInTx executes fn within a transaction
func (m *IdentityTxManager) RunInTx(ctx context.Context, fn func(ctx context.Context, repos identityapp.Repos) error) error {
	return m.db.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(ctx, NewIdentityRepos(tx))
	})
}

// Interface checks
var (
	_ catalogapp.TxManager  = (*CatalogTxManager)(nil)
	_ identityapp.TxManager = (*IdentityTxManager)(nil)
)

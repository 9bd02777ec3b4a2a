package catalog

import (
	"context"

	"github.com/ecommerce/backend/internal/domain/catalog"
)

// Repos bundles the catalog repositories a mutation may touch. The
// transaction manager hands services a copy bound to the open transaction.
type Repos struct {
	Categories catalog.CategoryRepository
	Brands     catalog.BrandRepository
	Products   catalog.ProductRepository
	Variants   catalog.VariantRepository
	Attributes catalog.AttributeRepository
	Reviews    catalog.ReviewRepository
	Media      catalog.MediaRepository
}

// TxManager runs a function atomically. Every repository access through the
// provided Repos happens on the same transaction; any returned error rolls
// the whole operation back.
type TxManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context, repos Repos) error) error
}

// TreeCache caches the rendered category tree. Implementations must be
// nil-safe to call: a nil cache disables caching.
type TreeCache interface {
	GetTree(ctx context.Context) ([]CategoryTreeNode, bool)
	SetTree(ctx context.Context, tree []CategoryTreeNode)
	Invalidate(ctx context.Context)
}

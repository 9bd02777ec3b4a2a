package identity

import (
	"context"

	"github.com/ecommerce/backend/internal/domain/identity"
)

// Repos bundles the identity repositories a mutation may touch. The
// transaction manager hands services a copy bound to the open transaction.
type Repos struct {
	Users     identity.UserRepository
	Addresses identity.AddressRepository
}

// TxManager runs a function atomically. Every repository access through the
// provided Repos happens on the same transaction; any returned error rolls
// the whole operation back.
type TxManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context, repos Repos) error) error
}

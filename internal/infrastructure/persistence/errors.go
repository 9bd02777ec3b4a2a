package persistence

import (
	"errors"

	"github.com/ecommerce/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// translateError maps driver-level errors onto domain errors so services
// never see gorm internals. Unique-index violations become ALREADY_EXISTS;
// the application layer's pre-checks make them rare, but concurrent writers
// can still race past those checks.
func translateError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return shared.ErrNotFound
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return shared.ErrAlreadyExists
	}
	return err
}

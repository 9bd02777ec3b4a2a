package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/ecommerce/backend/internal/domain/identity"
	"github.com/ecommerce/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupIdentityDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&identity.User{}, &identity.Address{}))
	return db
}

func mustUser(t *testing.T, repo *GormUserRepository, email string) *identity.User {
	t.Helper()
	user, err := identity.NewUser(email, "password123")
	require.NoError(t, err)
	require.NoError(t, repo.Save(context.Background(), user))
	return user
}

func mustAddress(t *testing.T, repo *GormAddressRepository, userID uuid.UUID, city string, isDefault bool) *identity.Address {
	t.Helper()
	address, err := identity.NewAddress(userID, identity.AddressFields{
		Kind:     identity.AddressKindHome,
		FullName: "Asha Rao",
		Phone:    "+91-9000000001",
		Pincode:  "560001",
		Line:     "12 MG Road",
		City:     city,
		State:    "Karnataka",
	})
	require.NoError(t, err)
	if isDefault {
		address.MarkDefault()
	}
	require.NoError(t, repo.Save(context.Background(), address))
	return address
}

func TestGormUserRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewGormUserRepository(setupIdentityDB(t))
	user := mustUser(t, repo, "asha@example.com")
	mustUser(t, repo, "vikram@example.com")

	t.Run("FindByEmail normalizes the lookup email", func(t *testing.T) {
		found, err := repo.FindByEmail(ctx, "ASHA@Example.com")
		require.NoError(t, err)
		assert.Equal(t, user.ID, found.ID)
	})

	t.Run("EmailExists excludes the given ID", func(t *testing.T) {
		exists, err := repo.EmailExists(ctx, "asha@example.com", uuid.Nil)
		require.NoError(t, err)
		assert.True(t, exists)

		exists, err = repo.EmailExists(ctx, "asha@example.com", user.ID)
		require.NoError(t, err)
		assert.False(t, exists)
	})

	t.Run("duplicate email is rejected by the unique index", func(t *testing.T) {
		duplicate, err := identity.NewUser("asha@example.com", "password456")
		require.NoError(t, err)
		assert.ErrorIs(t, repo.Save(ctx, duplicate), shared.ErrAlreadyExists)
	})

	t.Run("FindAll filters on staff flag", func(t *testing.T) {
		require.NoError(t, user.GrantStaff())
		require.NoError(t, repo.Save(ctx, user))

		staff, err := repo.FindAll(ctx, shared.Filter{
			Filters: map[string]interface{}{"is_staff": true},
		})
		require.NoError(t, err)
		require.Len(t, staff, 1)
		assert.Equal(t, user.ID, staff[0].ID)
	})

	t.Run("unknown user returns not found", func(t *testing.T) {
		_, err := repo.FindByID(ctx, uuid.New())
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestGormAddressRepository(t *testing.T) {
	ctx := context.Background()
	db := setupIdentityDB(t)
	users := NewGormUserRepository(db)
	repo := NewGormAddressRepository(db)
	user := mustUser(t, users, "asha@example.com")

	home := mustAddress(t, repo, user.ID, "Bengaluru", false)
	time.Sleep(2 * time.Millisecond)
	work := mustAddress(t, repo, user.ID, "Mysuru", true)

	t.Run("FindByUser lists the default address first", func(t *testing.T) {
		addresses, err := repo.FindByUser(ctx, user.ID)
		require.NoError(t, err)
		require.Len(t, addresses, 2)
		assert.Equal(t, work.ID, addresses[0].ID)
		assert.Equal(t, home.ID, addresses[1].ID)
	})

	t.Run("FindDefault returns the flagged address", func(t *testing.T) {
		found, err := repo.FindDefault(ctx, user.ID)
		require.NoError(t, err)
		assert.Equal(t, work.ID, found.ID)
	})

	t.Run("ClearDefaultForUser unsets every default", func(t *testing.T) {
		require.NoError(t, repo.ClearDefaultForUser(ctx, user.ID))

		_, err := repo.FindDefault(ctx, user.ID)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("Delete reports missing rows", func(t *testing.T) {
		require.NoError(t, repo.Delete(ctx, home.ID))
		assert.ErrorIs(t, repo.Delete(ctx, home.ID), shared.ErrNotFound)
	})
}

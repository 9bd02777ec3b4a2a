package identity

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUser(t *testing.T) {
	t.Run("creates active customer", func(t *testing.T) {
		user, err := NewUser("Jane@Example.com", "s3cret-pass")
		require.NoError(t, err)

		assert.Equal(t, "jane@example.com", user.Email)
		assert.True(t, user.IsActive)
		assert.False(t, user.IsStaff)
		assert.NotEqual(t, "s3cret-pass", user.PasswordHash)
		assert.True(t, user.VerifyPassword("s3cret-pass"))
		assert.False(t, user.VerifyPassword("wrong"))
	})

	t.Run("staff constructor sets the flag", func(t *testing.T) {
		user, err := NewStaffUser("admin@example.com", "s3cret-pass")
		require.NoError(t, err)
		assert.True(t, user.IsStaff)
	})

	t.Run("fails with invalid email", func(t *testing.T) {
		_, err := NewUser("not-an-email", "s3cret-pass")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Email format")
	})

	t.Run("fails with short password", func(t *testing.T) {
		_, err := NewUser("jane@example.com", "short")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "at least 8 characters")
	})
}

func TestUserPassword(t *testing.T) {
	user, _ := NewUser("jane@example.com", "original-pass")

	t.Run("change requires correct old password", func(t *testing.T) {
		err := user.ChangePassword("wrong", "new-password")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "incorrect")
	})

	t.Run("change with correct old password", func(t *testing.T) {
		err := user.ChangePassword("original-pass", "new-password")
		require.NoError(t, err)
		assert.True(t, user.VerifyPassword("new-password"))
		assert.False(t, user.VerifyPassword("original-pass"))
	})

	t.Run("staff reset skips old password", func(t *testing.T) {
		err := user.SetPassword("reset-password")
		require.NoError(t, err)
		assert.True(t, user.VerifyPassword("reset-password"))
	})
}

func TestUserProfile(t *testing.T) {
	user, _ := NewUser("jane@example.com", "s3cret-pass")

	t.Run("FullName falls back to email local part", func(t *testing.T) {
		assert.Equal(t, "jane", user.FullName())
	})

	t.Run("FullName joins name fields", func(t *testing.T) {
		require.NoError(t, user.SetName("Jane", "Doe"))
		assert.Equal(t, "Jane Doe", user.FullName())
	})

	t.Run("gender accepts known values and empty", func(t *testing.T) {
		require.NoError(t, user.SetGender(GenderFemale))
		require.NoError(t, user.SetGender(""))
		require.Error(t, user.SetGender("unknown"))
	})

	t.Run("birth date cannot be in the future", func(t *testing.T) {
		future := time.Now().Add(24 * time.Hour)
		require.Error(t, user.SetBirthDate(&future))

		past := time.Date(1990, 5, 1, 0, 0, 0, 0, time.UTC)
		require.NoError(t, user.SetBirthDate(&past))
	})
}

func TestUserStatus(t *testing.T) {
	t.Run("staff grant and revoke", func(t *testing.T) {
		user, _ := NewUser("jane@example.com", "s3cret-pass")

		require.NoError(t, user.GrantStaff())
		require.Error(t, user.GrantStaff())
		require.NoError(t, user.RevokeStaff())
		require.Error(t, user.RevokeStaff())
	})

	t.Run("deactivate and activate", func(t *testing.T) {
		user, _ := NewUser("jane@example.com", "s3cret-pass")

		require.NoError(t, user.Deactivate())
		assert.False(t, user.IsActive)
		require.Error(t, user.Deactivate())

		require.NoError(t, user.Activate())
		assert.True(t, user.IsActive)
	})
}

func validAddressFields() AddressFields {
	return AddressFields{
		Kind:     AddressKindHome,
		FullName: "Jane Doe",
		Phone:    "555-0100",
		Pincode:  "12345",
		Line:     "1 Main St",
		City:     "Springfield",
		State:    "IL",
	}
}

func TestNewAddress(t *testing.T) {
	userID := uuid.New()

	t.Run("creates address", func(t *testing.T) {
		addr, err := NewAddress(userID, validAddressFields())
		require.NoError(t, err)

		assert.Equal(t, userID, addr.UserID)
		assert.Equal(t, AddressKindHome, addr.Kind)
		assert.False(t, addr.IsDefault)
	})

	t.Run("rejects unknown kind", func(t *testing.T) {
		fields := validAddressFields()
		fields.Kind = "vacation"
		_, err := NewAddress(userID, fields)
		require.Error(t, err)
	})

	t.Run("rejects missing required fields", func(t *testing.T) {
		for _, mutate := range []func(*AddressFields){
			func(f *AddressFields) { f.FullName = "" },
			func(f *AddressFields) { f.Phone = " " },
			func(f *AddressFields) { f.Pincode = "" },
			func(f *AddressFields) { f.Line = "" },
			func(f *AddressFields) { f.City = "" },
			func(f *AddressFields) { f.State = "" },
		} {
			fields := validAddressFields()
			mutate(&fields)
			_, err := NewAddress(userID, fields)
			require.Error(t, err)
		}
	})

	t.Run("rejects nil user", func(t *testing.T) {
		_, err := NewAddress(uuid.Nil, validAddressFields())
		require.Error(t, err)
	})
}

func TestAddressUpdate(t *testing.T) {
	addr, _ := NewAddress(uuid.New(), validAddressFields())

	fields := validAddressFields()
	fields.Kind = AddressKindWork
	fields.City = "Shelbyville"
	require.NoError(t, addr.Update(fields))
	assert.Equal(t, AddressKindWork, addr.Kind)
	assert.Equal(t, "Shelbyville", addr.City)

	fields.City = ""
	require.Error(t, addr.Update(fields))
}

func TestAddressDefaultFlag(t *testing.T) {
	addr, _ := NewAddress(uuid.New(), validAddressFields())

	addr.MarkDefault()
	assert.True(t, addr.IsDefault)

	addr.ClearDefault()
	assert.False(t, addr.IsDefault)
}

package catalog

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCategory(t *testing.T) {
	t.Run("creates root category with valid inputs", func(t *testing.T) {
		category, err := NewCategory("Electronics", "electronics", nil)
		require.NoError(t, err)
		require.NotNil(t, category)

		assert.Equal(t, "Electronics", category.Name)
		assert.Equal(t, "electronics", category.Slug)
		assert.Nil(t, category.ParentID)
		assert.Equal(t, 0, category.Level)
		assert.Equal(t, "electronics", category.Path)
		assert.True(t, category.IsActive)
		assert.True(t, category.ShowInMenu)
		assert.True(t, category.IsRoot())
		assert.NotEmpty(t, category.ID)
	})

	t.Run("creates child category under parent", func(t *testing.T) {
		parent, err := NewCategory("Electronics", "electronics", nil)
		require.NoError(t, err)

		child, err := NewCategory("Mobiles", "mobiles", parent)
		require.NoError(t, err)

		require.NotNil(t, child.ParentID)
		assert.Equal(t, parent.ID, *child.ParentID)
		assert.Equal(t, 1, child.Level)
		assert.Equal(t, "electronics/mobiles", child.Path)
		assert.False(t, child.IsRoot())
	})

	t.Run("trims name whitespace", func(t *testing.T) {
		category, err := NewCategory("  Electronics  ", "electronics", nil)
		require.NoError(t, err)
		assert.Equal(t, "Electronics", category.Name)
	})

	t.Run("fails with empty name", func(t *testing.T) {
		_, err := NewCategory("", "electronics", nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "name cannot be empty")
	})

	t.Run("fails with invalid slug", func(t *testing.T) {
		_, err := NewCategory("Electronics", "Electronics!", nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "lowercase letters")
	})
}

func TestCategoryRename(t *testing.T) {
	t.Run("updates name and leaves slug and path alone", func(t *testing.T) {
		category, _ := NewCategory("Electronics", "electronics", nil)
		originalVersion := category.GetVersion()

		err := category.Rename("Consumer Electronics")
		require.NoError(t, err)

		assert.Equal(t, "Consumer Electronics", category.Name)
		assert.Equal(t, "electronics", category.Slug)
		assert.Equal(t, "electronics", category.Path)
		assert.Equal(t, originalVersion+1, category.GetVersion())
	})

	t.Run("fails with empty name", func(t *testing.T) {
		category, _ := NewCategory("Electronics", "electronics", nil)
		err := category.Rename("   ")
		require.Error(t, err)
	})
}

func TestCategoryChangeSlug(t *testing.T) {
	t.Run("recomputes own path from parent path", func(t *testing.T) {
		category, _ := NewCategory("Mobiles", "mobiles", nil)
		err := category.ChangeSlug("smartphones", "electronics")
		require.NoError(t, err)

		assert.Equal(t, "smartphones", category.Slug)
		assert.Equal(t, "electronics/smartphones", category.Path)
	})

	t.Run("root path is just the slug", func(t *testing.T) {
		category, _ := NewCategory("Mobiles", "mobiles", nil)
		err := category.ChangeSlug("phones", "")
		require.NoError(t, err)
		assert.Equal(t, "phones", category.Path)
	})

	t.Run("fails with invalid slug", func(t *testing.T) {
		category, _ := NewCategory("Mobiles", "mobiles", nil)
		err := category.ChangeSlug("Has Spaces", "")
		require.Error(t, err)
	})
}

func TestCategoryMoveUnder(t *testing.T) {
	t.Run("moves under a new parent", func(t *testing.T) {
		oldParent, _ := NewCategory("Electronics", "electronics", nil)
		newParent, _ := NewCategory("Appliances", "appliances", nil)
		child, _ := NewCategory("Audio", "audio", oldParent)

		child.MoveUnder(newParent)

		require.NotNil(t, child.ParentID)
		assert.Equal(t, newParent.ID, *child.ParentID)
		assert.Equal(t, 1, child.Level)
		assert.Equal(t, "appliances/audio", child.Path)
	})

	t.Run("moves to root with nil parent", func(t *testing.T) {
		parent, _ := NewCategory("Electronics", "electronics", nil)
		child, _ := NewCategory("Audio", "audio", parent)

		child.MoveUnder(nil)

		assert.Nil(t, child.ParentID)
		assert.Equal(t, 0, child.Level)
		assert.Equal(t, "audio", child.Path)
		assert.True(t, child.IsRoot())
	})

	t.Run("level follows the new parent", func(t *testing.T) {
		root, _ := NewCategory("Electronics", "electronics", nil)
		mid, _ := NewCategory("Mobiles", "mobiles", root)
		leaf, _ := NewCategory("Audio", "audio", nil)

		leaf.MoveUnder(mid)
		assert.Equal(t, 2, leaf.Level)
		assert.Equal(t, "electronics/mobiles/audio", leaf.Path)
	})
}

func TestCategoryStatus(t *testing.T) {
	t.Run("deactivates active category", func(t *testing.T) {
		category, _ := NewCategory("Test", "test", nil)
		err := category.Deactivate()
		require.NoError(t, err)
		assert.False(t, category.IsActive)
	})

	t.Run("fails to deactivate inactive category", func(t *testing.T) {
		category, _ := NewCategory("Test", "test", nil)
		require.NoError(t, category.Deactivate())

		err := category.Deactivate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "already inactive")
	})

	t.Run("activates inactive category", func(t *testing.T) {
		category, _ := NewCategory("Test", "test", nil)
		require.NoError(t, category.Deactivate())

		err := category.Activate()
		require.NoError(t, err)
		assert.True(t, category.IsActive)
	})

	t.Run("fails to activate already active category", func(t *testing.T) {
		category, _ := NewCategory("Test", "test", nil)
		err := category.Activate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "already active")
	})
}

func TestCategoryTreeMethods(t *testing.T) {
	t.Run("IsAncestorOf follows path prefixes", func(t *testing.T) {
		root, _ := NewCategory("Electronics", "electronics", nil)
		mid, _ := NewCategory("Mobiles", "mobiles", root)
		leaf, _ := NewCategory("Smartphones", "smartphones", mid)

		assert.True(t, root.IsAncestorOf(mid))
		assert.True(t, root.IsAncestorOf(leaf))
		assert.True(t, mid.IsAncestorOf(leaf))
		assert.False(t, leaf.IsAncestorOf(root))
		assert.False(t, mid.IsAncestorOf(root))
	})

	t.Run("IsAncestorOf is strict", func(t *testing.T) {
		category, _ := NewCategory("Electronics", "electronics", nil)
		assert.False(t, category.IsAncestorOf(category))
	})

	t.Run("sibling slug prefixes are not ancestry", func(t *testing.T) {
		a, _ := NewCategory("Phone", "phone", nil)
		b, _ := NewCategory("Phones", "phones", nil)
		assert.False(t, a.IsAncestorOf(b))
	})

	t.Run("IsAncestorOf handles nil", func(t *testing.T) {
		category, _ := NewCategory("Electronics", "electronics", nil)
		assert.False(t, category.IsAncestorOf(nil))
	})

	t.Run("IsDescendantOf mirrors IsAncestorOf", func(t *testing.T) {
		root, _ := NewCategory("Electronics", "electronics", nil)
		child, _ := NewCategory("Mobiles", "mobiles", root)

		assert.True(t, child.IsDescendantOf(root))
		assert.False(t, root.IsDescendantOf(child))
		assert.False(t, child.IsDescendantOf(nil))
	})
}

func TestValidateCategoryName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid name", "Electronics", false},
		{"valid with spaces", "Home Electronics", false},
		{"valid unicode", "Électronique", false},
		{"empty", "", true},
		{"whitespace only", "   ", true},
		{"max length", strings.Repeat("a", 200), false},
		{"too long", strings.Repeat("a", 201), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateCategoryName(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateSlug(t *testing.T) {
	tests := []struct {
		name    string
		slug    string
		wantErr bool
	}{
		{"valid", "electronics", false},
		{"valid with hyphen", "home-electronics", false},
		{"valid with digits", "top-10", false},
		{"empty", "", true},
		{"uppercase", "Electronics", true},
		{"space", "home electronics", true},
		{"slash", "a/b", true},
		{"too long", strings.Repeat("a", 251), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateSlug(tt.slug)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

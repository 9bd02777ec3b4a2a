package catalog

import (
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// maxSlugLength bounds generated slugs so the materialized path column
// (1000 chars) can hold several levels of nesting
const maxSlugLength = 250

var slugFolder = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Slugify derives a URL-safe slug from a display name.
// Diacritics are folded to their ASCII base, everything that is not a
// letter or digit becomes a hyphen, and runs of hyphens collapse.
func Slugify(name string) string {
	folded, _, err := transform.String(slugFolder, name)
	if err != nil {
		folded = name
	}

	var b strings.Builder
	lastHyphen := true // suppress leading hyphen
	for _, r := range strings.ToLower(folded) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastHyphen = false
		default:
			if !lastHyphen {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
	}

	slug := strings.Trim(b.String(), "-")
	if len(slug) > maxSlugLength {
		slug = strings.Trim(slug[:maxSlugLength], "-")
	}
	return slug
}

// SlugExistsFunc reports whether a candidate slug is already taken within
// the caller's uniqueness scope (per-parent for categories, global for
// brands and products).
type SlugExistsFunc func(slug string) (bool, error)

// AllocateSlug returns the base slug derived from name, or the first
// "base-1", "base-2", ... variant that is free within the scope.
// Allocation happens once at creation time; existing slugs are never
// re-derived on update.
func AllocateSlug(name string, exists SlugExistsFunc) (string, error) {
	base := Slugify(name)
	if base == "" {
		base = "item"
	}

	candidate := base
	for counter := 1; ; counter++ {
		taken, err := exists(candidate)
		if err != nil {
			return "", err
		}
		if !taken {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%d", base, counter)
	}
}

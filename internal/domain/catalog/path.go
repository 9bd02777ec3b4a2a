package catalog

import "strings"

// PathSeparator joins slugs in a category's materialized path
const PathSeparator = "/"

// BuildPath computes a category's materialized path from its parent's path
// and its own slug. Root categories carry just their slug.
// Pure function; callers are responsible for persisting the result and for
// recomputing every descendant whenever an ancestor's path changes.
func BuildPath(parentPath, slug string) string {
	if parentPath == "" {
		return slug
	}
	return parentPath + PathSeparator + slug
}

// ReplacePathPrefix rewrites a descendant path after its ancestor moved from
// oldPrefix to newPrefix. The caller guarantees path is oldPrefix or starts
// with oldPrefix + "/".
func ReplacePathPrefix(path, oldPrefix, newPrefix string) string {
	if path == oldPrefix {
		return newPrefix
	}
	return newPrefix + strings.TrimPrefix(path, oldPrefix)
}

// DisplayPath joins ancestor names root-to-leaf for human-readable output,
// e.g. "Electronics > Mobiles > Smartphones". Distinct from the slug-based
// materialized path used for lookup.
func DisplayPath(names []string) string {
	return strings.Join(names, " > ")
}

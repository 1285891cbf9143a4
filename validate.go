package catalogedit

import (
	"fmt"

	gyaml "github.com/goccy/go-yaml"
)

// validUpgradePath reports whether path can name a catalog entry: more than
// one segment, rooted at a top-level "catalog" or "catalogs" key. Anything
// else is not a catalog upgrade and is rejected before any parsing happens.
func validUpgradePath(path []string) bool {
	if len(path) < 2 {
		return false
	}
	return path[0] == "catalog" || path[0] == "catalogs"
}

// validWorkspaceShape checks the plain-value view against the expected
// workspace shape: "catalog" maps dependency name to version string, and
// "catalogs" maps catalog name to such a mapping. At least one of the two
// must be present. Other top-level keys (packages, overrides, ...) are
// tolerated, but a present-and-malformed catalog key rejects the document
// as a whole.
func validWorkspaceShape(plain gyaml.MapSlice) bool {
	catalog, hasCatalog := plainValue(plain, "catalog")
	catalogs, hasCatalogs := plainValue(plain, "catalogs")
	if !hasCatalog && !hasCatalogs {
		return false
	}
	if hasCatalog && !isVersionMap(catalog) {
		return false
	}
	if hasCatalogs {
		groups, ok := catalogs.(gyaml.MapSlice)
		if !ok {
			return false
		}
		for _, it := range groups {
			if !isVersionMap(it.Value) {
				return false
			}
		}
	}
	return true
}

// isVersionMap accepts a mapping whose values are all strings. Versions that
// YAML resolves to other scalar types (a bare 4, a null) fail here.
func isVersionMap(v interface{}) bool {
	ms, ok := v.(gyaml.MapSlice)
	if !ok {
		return false
	}
	for _, it := range ms {
		if _, ok := it.Value.(string); !ok {
			return false
		}
	}
	return true
}

// currentValueAt resolves path in the plain-value view and returns the string
// at its leaf. A path that does not resolve is reported as absent, never as
// an error.
func currentValueAt(plain gyaml.MapSlice, path []string) (string, bool) {
	cur := plain
	for _, seg := range path[:len(path)-1] {
		v, ok := plainValue(cur, seg)
		if !ok {
			return "", false
		}
		sub, ok := v.(gyaml.MapSlice)
		if !ok {
			return "", false
		}
		cur = sub
	}
	v, ok := plainValue(cur, path[len(path)-1])
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// plainValue returns the value for key at the top level of ms. The last
// occurrence wins when the document carries duplicate keys, matching the
// structural scan in locatePair.
func plainValue(ms gyaml.MapSlice, key string) (interface{}, bool) {
	for i := len(ms) - 1; i >= 0; i-- {
		if keyText(ms[i].Key) == key {
			return ms[i].Value, true
		}
	}
	return nil, false
}

func keyText(k interface{}) string {
	switch v := k.(type) {
	case string:
		return v
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprint(k)
	}
}

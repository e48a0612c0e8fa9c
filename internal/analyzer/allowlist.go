package analyzer

import "github.com/statconf/statconf/internal/utils/stringutils"

// AllowedExport declares one recognized named export. Key is the
// configuration key the export contributes to; when empty, the declared name
// with its first letter lowercased is used.
type AllowedExport struct {
	Name string
	Key  string
}

// AllowList is the ordered table of named exports the locator recognizes.
// It is an explicit parameter rather than package state so callers can extend
// the recognized set.
type AllowList []AllowedExport

// DefaultAllowList returns the built-in allow-list: currently only
// MaxDuration.
func DefaultAllowList() AllowList {
	return AllowList{
		{Name: "MaxDuration"},
	}
}

// KeyFor returns the configuration key for a declared identifier, and
// whether the identifier is in the allow-list.
func (a AllowList) KeyFor(name string) (string, bool) {
	for _, e := range a {
		if e.Name != name {
			continue
		}
		if e.Key != "" {
			return e.Key, true
		}
		return stringutils.LowerFirst(name), true
	}
	return "", false
}

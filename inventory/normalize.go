package inventory

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var titleCaser = cases.Title(language.English)

// NormalizeKey reduces free text to its comparison form: trimmed and
// lower-cased. Two names with the same key are the same category/group.
func NormalizeKey(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// TitleCase is how newly stored category/group spellings are canonicalized.
func TitleCase(s string) string {
	return titleCaser.String(strings.ToLower(strings.TrimSpace(s)))
}

// CanonicalCategory returns the spelling to store for a free-text category.
// existing maps normalized key -> stored spelling; a hit reuses the exact
// stored form, a miss title-cases the trimmed input.
func CanonicalCategory(name string, existing map[string]string) string {
	if stored, ok := existing[NormalizeKey(name)]; ok {
		return stored
	}
	return TitleCase(name)
}

// GroupKey scopes a group name by lab: the same name in a different lab is
// a distinct group. labID is empty for global groups.
func GroupKey(name, labID string) string {
	return labID + "|" + NormalizeKey(name)
}

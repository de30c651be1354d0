package textutil

import (
	"path/filepath"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

var lowerCaser = cases.Lower(language.Und)

// Fold returns the NFC, lowercase form of value.
func Fold(value string) string {
	return lowerCaser.String(norm.NFC.String(value))
}

// MatchKey folds a file or folder name for fuzzy comparison: underscores
// become spaces and the result is folded.
func MatchKey(name string) string {
	return Fold(strings.ReplaceAll(name, "_", " "))
}

// Stem returns the file name without its final extension.
func Stem(name string) string {
	base := filepath.Base(name)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// SameName reports whether two display names are equal once folded.
func SameName(a, b string) bool {
	return Fold(strings.TrimSpace(a)) == Fold(strings.TrimSpace(b))
}

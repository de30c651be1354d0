package catalog

import "strings"

// Format is one downloadable artifact format offered by the remote catalog.
type Format int

const (
	FormatSBSAR Format = iota
	FormatSBS
	FormatEXR
	FormatFBX
	FormatGLB
	FormatMDL
)

// FormatCount is the number of tracked formats.
const FormatCount = 6

var formatNames = [FormatCount]string{"sbsar", "sbs", "exr", "fbx", "glb", "mdl"}

// AllFormats returns every format in canonical order.
func AllFormats() []Format {
	return []Format{FormatSBSAR, FormatSBS, FormatEXR, FormatFBX, FormatGLB, FormatMDL}
}

// String returns the lowercase format name used in columns and reports.
func (f Format) String() string {
	if f < 0 || int(f) >= FormatCount {
		return "unknown"
	}
	return formatNames[f]
}

// Token returns the uppercase token shown on the listing page.
func (f Format) Token() string {
	return strings.ToUpper(f.String())
}

// ParseFormatToken maps a listing token (case-insensitive) to a Format.
func ParseFormatToken(token string) (Format, bool) {
	token = strings.ToLower(strings.TrimSpace(token))
	for i, name := range formatNames {
		if name == token {
			return Format(i), true
		}
	}
	return 0, false
}

// FormatForExtension maps a file extension (with or without dot) to a Format.
func FormatForExtension(ext string) (Format, bool) {
	return ParseFormatToken(strings.TrimPrefix(ext, "."))
}

// FormatSet is a fixed set of format booleans in canonical order.
type FormatSet [FormatCount]bool

// FormatSetFromTokens builds the set of formats whose token is present.
// Unknown tokens are ignored.
func FormatSetFromTokens(tokens []string) FormatSet {
	var set FormatSet
	for _, token := range tokens {
		if f, ok := ParseFormatToken(token); ok {
			set[f] = true
		}
	}
	return set
}

// Has reports whether f is in the set.
func (s FormatSet) Has(f Format) bool {
	if f < 0 || int(f) >= FormatCount {
		return false
	}
	return s[f]
}

// With returns a copy of the set with f added.
func (s FormatSet) With(f Format) FormatSet {
	if f >= 0 && int(f) < FormatCount {
		s[f] = true
	}
	return s
}

// Count returns the number of formats in the set.
func (s FormatSet) Count() int {
	n := 0
	for _, v := range s {
		if v {
			n++
		}
	}
	return n
}

// List returns the formats in the set in canonical order.
func (s FormatSet) List() []Format {
	out := make([]Format, 0, FormatCount)
	for _, f := range AllFormats() {
		if s[f] {
			out = append(out, f)
		}
	}
	return out
}

// String joins the lowercase names with single spaces.
func (s FormatSet) String() string {
	return JoinFormats(s.List())
}

// JoinFormats renders formats as space separated lowercase names.
func JoinFormats(formats []Format) string {
	names := make([]string, len(formats))
	for i, f := range formats {
		names[i] = f.String()
	}
	return strings.Join(names, " ")
}

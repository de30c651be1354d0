package page

import "strings"

// StripQuery drops everything from the first "?" on.
func StripQuery(raw string) string {
	if i := strings.IndexByte(raw, '?'); i >= 0 {
		return raw[:i]
	}
	return raw
}

// BackgroundImageURL extracts the address from a css background-image value
// such as `url("https://cdn/x.png?w=1")`, without its query string. It
// returns "" for "none" or values without a url().
func BackgroundImageURL(css string) string {
	css = strings.TrimSpace(css)
	start := strings.Index(css, "url(")
	if start < 0 {
		return ""
	}
	rest := css[start+len("url("):]
	end := strings.IndexByte(rest, ')')
	if end < 0 {
		return ""
	}
	value := strings.Trim(strings.TrimSpace(rest[:end]), `"'`)
	return StripQuery(value)
}

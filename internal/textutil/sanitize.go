package textutil

import "strings"

var segmentReplacer = strings.NewReplacer(
	"/", "-",
	"\\", "-",
	"\x00", "",
)

// PathSegment turns a catalog display name into a single directory name.
// Separators become dashes; everything else is kept so folders read like the
// listing. "." and ".." collapse to "_".
func PathSegment(name string) string {
	name = strings.TrimSpace(segmentReplacer.Replace(name))
	switch name {
	case "", ".", "..":
		return "_"
	}
	return name
}

package scrape

import (
	"fmt"
	"strings"

	"assetmirror/internal/catalog"
	"assetmirror/internal/services"
)

// Badge tokens that may precede an entry's display name.
const (
	BadgeNew     = "NEW"
	BadgeFree    = "FREE"
	BadgeUpdated = "UPDATED"
)

const maxBadges = 2

// Entry is one catalog card read from a category listing.
type Entry struct {
	Name         string
	Badges       []string
	URL          string
	Image        string
	FormatTokens []string
}

// NeedsUpdate reports whether the card carries the UPDATED badge.
func (e Entry) NeedsUpdate() bool {
	for _, b := range e.Badges {
		if b == BadgeUpdated {
			return true
		}
	}
	return false
}

// Formats returns the offered format set encoded by the card's tokens.
func (e Entry) Formats() catalog.FormatSet {
	return catalog.FormatSetFromTokens(e.FormatTokens)
}

func isBadge(line string) (string, bool) {
	switch upper := strings.ToUpper(strings.TrimSpace(line)); upper {
	case BadgeNew, BadgeFree, BadgeUpdated:
		return upper, true
	default:
		return "", false
	}
}

// ParseEntryText splits a card's rendered text into badges, display name and
// format tokens. Up to two leading badge lines are recognised; the next line
// is the name and the one after it the space separated formats.
func ParseEntryText(text string) (name string, badges []string, formats []string, err error) {
	lines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	i := 0
	for i < len(lines) && len(badges) < maxBadges {
		badge, ok := isBadge(lines[i])
		if !ok {
			break
		}
		badges = append(badges, badge)
		i++
	}
	if len(lines)-i < 2 {
		return "", nil, nil, services.Wrap(services.ErrValidation, "scrape", "parse entry",
			fmt.Sprintf("expected name and format lines, got %d line(s)", len(lines)), nil)
	}
	name = strings.TrimSpace(lines[i])
	if name == "" {
		return "", nil, nil, services.Wrap(services.ErrValidation, "scrape", "parse entry", "empty display name", nil)
	}
	formats = strings.Fields(lines[i+1])
	return name, badges, formats, nil
}

package scrape

import (
	"errors"
	"strings"
	"testing"

	"assetmirror/internal/services"
)

func TestParseEntryText(t *testing.T) {
	tests := []struct {
		name       string
		text       string
		wantName   string
		wantBadges []string
		wantTokens string
	}{
		{"plain", "Red Brick\nSBSAR FBX", "Red Brick", nil, "SBSAR FBX"},
		{"one badge", "UPDATED\nRed Brick\nSBSAR FBX", "Red Brick", []string{"UPDATED"}, "SBSAR FBX"},
		{"two badges", "new\nFree\nRed Brick\nSBS", "Red Brick", []string{"NEW", "FREE"}, "SBS"},
		{"third badge is the name", "NEW\nFREE\nUPDATED\nGLB", "UPDATED", []string{"NEW", "FREE"}, "GLB"},
		{"extra lines ignored", "Red Brick\nSBSAR\n4.5k downloads", "Red Brick", nil, "SBSAR"},
		{"empty format line", "Red Brick\n", "Red Brick", nil, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			name, badges, tokens, err := ParseEntryText(tt.text)
			if err != nil {
				t.Fatalf("ParseEntryText: %v", err)
			}
			if name != tt.wantName {
				t.Fatalf("name = %q, want %q", name, tt.wantName)
			}
			if strings.Join(badges, ",") != strings.Join(tt.wantBadges, ",") {
				t.Fatalf("badges = %v, want %v", badges, tt.wantBadges)
			}
			if strings.Join(tokens, " ") != tt.wantTokens {
				t.Fatalf("tokens = %v, want %q", tokens, tt.wantTokens)
			}
		})
	}
}

func TestParseEntryTextRejectsShortCards(t *testing.T) {
	for _, text := range []string{"", "Red Brick", "UPDATED\nRed Brick", "NEW\n\nSBSAR"} {
		_, _, _, err := ParseEntryText(text)
		if !errors.Is(err, services.ErrValidation) {
			t.Fatalf("ParseEntryText(%q) expected validation error, got %v", text, err)
		}
	}
}

func TestEntryNeedsUpdate(t *testing.T) {
	if (Entry{Badges: []string{"NEW", "UPDATED"}}).NeedsUpdate() != true {
		t.Fatal("expected UPDATED in second position to count")
	}
	if (Entry{Badges: []string{"FREE"}}).NeedsUpdate() {
		t.Fatal("FREE alone is not an update")
	}
}

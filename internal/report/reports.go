package report

import (
	"bufio"
	"context"
	"errors"
	"io/fs"
	"os"
	"strings"

	"assetmirror/internal/catalog"
	"assetmirror/internal/reconcile"
	"assetmirror/internal/services"
)

// FileTransfer renders an inbox transfer as the three report sections.
func FileTransfer(t reconcile.Transfer) []Section {
	return []Section{
		{Title: "Moved files", Lines: t.Moved},
		{Title: "Existed files", Lines: t.Existing},
		{Title: "Missing locations for files", Lines: t.Missing},
	}
}

// ChangeLog renders relocations as "from >> to" lines relative to the
// library root, followed by duplicates left in place. It returns nil when
// nothing was relocated or flagged.
func ChangeLog(r reconcile.Relocation, layout reconcile.Layout) []Section {
	if len(r.Moves) == 0 && len(r.Duplicates) == 0 {
		return nil
	}
	moves := make([]string, len(r.Moves))
	for i, m := range r.Moves {
		moves[i] = layout.Rel(m.From) + " >> " + layout.Rel(m.To)
	}
	sections := []Section{{Lines: moves}}
	if len(r.Duplicates) > 0 {
		dups := make([]string, len(r.Duplicates))
		for i, d := range r.Duplicates {
			dups[i] = layout.Rel(d.Path) + " (left in place, " + layout.Rel(d.Moved) + " was relocated)"
		}
		sections = append(sections, Section{Title: "Duplicate folders", Lines: dups})
	}
	return sections
}

// NameLookup finds assets by display name.
type NameLookup interface {
	AssetsByName(ctx context.Context, name string) ([]*catalog.Asset, error)
}

// RequestList matches each line of the requests file against the catalog by
// display name and renders "name - formats - url" for the first match.
// Unknown names are returned separately.
func RequestList(ctx context.Context, path string, lookup NameLookup) (matched []string, unknown []string, err error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil, services.Wrap(services.ErrNotFound, "report", "read requests", path, err)
		}
		return nil, nil, services.Wrap(services.ErrFilesystem, "report", "read requests", path, err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		name := strings.TrimSpace(scanner.Text())
		if name == "" {
			continue
		}
		assets, err := lookup.AssetsByName(ctx, name)
		if err != nil {
			return matched, unknown, err
		}
		if len(assets) == 0 {
			unknown = append(unknown, name)
			continue
		}
		a := assets[0]
		matched = append(matched, a.Name+" - "+a.Formats.String()+" - "+a.URL)
	}
	if err := scanner.Err(); err != nil {
		return matched, unknown, services.Wrap(services.ErrFilesystem, "report", "read requests", path, err)
	}
	return matched, unknown, nil
}

package main

import (
	"fmt"
	"strings"

	"assetmirror/internal/catalog"
	"assetmirror/internal/services"
)

func unknownTypeError(name string, tax *catalog.Taxonomy) error {
	known := make([]string, len(tax.Types))
	for i, t := range tax.Types {
		known[i] = t.Name
	}
	msg := fmt.Sprintf("unknown asset type %q", name)
	if len(known) > 0 {
		msg += fmt.Sprintf(" (known: %s)", strings.Join(known, ", "))
	} else {
		msg += " (run `assetmirror scan taxonomy` first)"
	}
	return services.Wrap(services.ErrValidation, "cli", "select type", msg, nil)
}

func typeIDs(types []*catalog.AssetType) []int64 {
	ids := make([]int64, len(types))
	for i, t := range types {
		ids[i] = t.ID
	}
	return ids
}

func categoriesOf(tax *catalog.Taxonomy, types []*catalog.AssetType) []*catalog.Category {
	var out []*catalog.Category
	for _, t := range types {
		out = append(out, tax.CategoriesOf(t.ID)...)
	}
	return out
}

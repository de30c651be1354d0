package catalog

import "context"

// Taxonomy is an in-memory snapshot of types, categories and assets in
// listing order, loaded once per filesystem pass.
type Taxonomy struct {
	Types []*AssetType
	// Categories holds every category in listing order, regardless of type.
	Categories []*Category

	byType     map[int64][]*Category
	byCategory map[int64][]*Asset
	types      map[int64]*AssetType
	categories map[int64]*Category
}

// LoadTaxonomy reads the whole catalog into a Taxonomy snapshot.
func (s *Store) LoadTaxonomy(ctx context.Context) (*Taxonomy, error) {
	types, err := s.AssetTypes(ctx)
	if err != nil {
		return nil, err
	}
	categories, err := s.Categories(ctx)
	if err != nil {
		return nil, err
	}
	assets, err := s.Assets(ctx)
	if err != nil {
		return nil, err
	}
	return NewTaxonomy(types, categories, assets), nil
}

// NewTaxonomy indexes the provided rows. Input order is preserved.
func NewTaxonomy(types []*AssetType, categories []*Category, assets []*Asset) *Taxonomy {
	tax := &Taxonomy{
		Types:      types,
		Categories: categories,
		byType:     make(map[int64][]*Category),
		byCategory: make(map[int64][]*Asset),
		types:      make(map[int64]*AssetType, len(types)),
		categories: make(map[int64]*Category, len(categories)),
	}
	for _, t := range types {
		tax.types[t.ID] = t
	}
	for _, c := range categories {
		tax.categories[c.ID] = c
		tax.byType[c.AssetTypeID] = append(tax.byType[c.AssetTypeID], c)
	}
	for _, a := range assets {
		tax.byCategory[a.CategoryID] = append(tax.byCategory[a.CategoryID], a)
	}
	return tax
}

// CategoriesOf returns the categories owned by the asset type.
func (t *Taxonomy) CategoriesOf(assetTypeID int64) []*Category {
	return t.byType[assetTypeID]
}

// AssetsOf returns the assets of the category.
func (t *Taxonomy) AssetsOf(categoryID int64) []*Asset {
	return t.byCategory[categoryID]
}

// TypeOf returns the owning asset type of a category, or nil.
func (t *Taxonomy) TypeOf(category *Category) *AssetType {
	if category == nil {
		return nil
	}
	return t.types[category.AssetTypeID]
}

// CategoryOf returns the owning category of an asset, or nil.
func (t *Taxonomy) CategoryOf(asset *Asset) *Category {
	if asset == nil {
		return nil
	}
	return t.categories[asset.CategoryID]
}

// Placement pairs an asset with its owning category and type.
type Placement struct {
	Type     *AssetType
	Category *Category
	Asset    *Asset
}

// Walk visits every asset in type, category, asset listing order. Returning
// false from fn stops the walk.
func (t *Taxonomy) Walk(fn func(Placement) bool) {
	for _, assetType := range t.Types {
		for _, category := range t.byType[assetType.ID] {
			for _, asset := range t.byCategory[category.ID] {
				if !fn(Placement{Type: assetType, Category: category, Asset: asset}) {
					return
				}
			}
		}
	}
}

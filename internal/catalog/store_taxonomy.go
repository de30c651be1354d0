package catalog

import (
	"context"
	"database/sql"
	"errors"
	"strings"
)

// InsertAssetType creates an asset type row and returns it with its ID.
// Uniqueness by name is the caller's responsibility.
func (s *Store) InsertAssetType(ctx context.Context, name, url string) (*AssetType, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, storeErr("insert asset type", errors.New("name is empty"))
	}
	res, err := s.execWithRetry(ctx, `INSERT INTO asset_type (name, url) VALUES (?, ?)`, name, nullableString(url))
	if err != nil {
		return nil, storeErr("insert asset type", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, storeErr("insert asset type", err)
	}
	return &AssetType{ID: id, Name: name, URL: url}, nil
}

// UpdateAssetType persists name and url changes for an existing asset type.
func (s *Store) UpdateAssetType(ctx context.Context, assetType *AssetType) error {
	if assetType == nil {
		return storeErr("update asset type", errors.New("asset type is nil"))
	}
	if _, err := s.execWithRetry(ctx, `UPDATE asset_type SET name = ?, url = ? WHERE id = ?`,
		assetType.Name, nullableString(assetType.URL), assetType.ID); err != nil {
		return storeErr("update asset type", err)
	}
	return nil
}

// AssetTypeByName returns the first asset type with the given name, or nil.
func (s *Store) AssetTypeByName(ctx context.Context, name string) (*AssetType, error) {
	row := s.db.QueryRowContext(ensureContext(ctx),
		`SELECT `+assetTypeColumns+` FROM asset_type WHERE name = ? ORDER BY id LIMIT 1`, name)
	assetType, err := scanAssetType(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, storeErr("asset type by name", err)
	}
	return assetType, nil
}

// AssetTypeByID returns the asset type with id, or nil.
func (s *Store) AssetTypeByID(ctx context.Context, id int64) (*AssetType, error) {
	row := s.db.QueryRowContext(ensureContext(ctx),
		`SELECT `+assetTypeColumns+` FROM asset_type WHERE id = ?`, id)
	assetType, err := scanAssetType(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, storeErr("asset type by id", err)
	}
	return assetType, nil
}

// AssetTypes lists every asset type in listing order.
func (s *Store) AssetTypes(ctx context.Context) ([]*AssetType, error) {
	rows, err := s.db.QueryContext(ensureContext(ctx), `SELECT `+assetTypeColumns+` FROM asset_type ORDER BY id`)
	if err != nil {
		return nil, storeErr("list asset types", err)
	}
	defer rows.Close()

	var out []*AssetType
	for rows.Next() {
		assetType, err := scanAssetType(rows)
		if err != nil {
			return nil, storeErr("scan asset type", err)
		}
		out = append(out, assetType)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr("list asset types", err)
	}
	return out, nil
}

// InsertCategory creates a category row under assetTypeID.
// Uniqueness by (name, asset type) is the caller's responsibility.
func (s *Store) InsertCategory(ctx context.Context, assetTypeID int64, name, url string) (*Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, storeErr("insert category", errors.New("name is empty"))
	}
	res, err := s.execWithRetry(ctx, `INSERT INTO category (asset_type, name, url) VALUES (?, ?, ?)`,
		assetTypeID, name, nullableString(url))
	if err != nil {
		return nil, storeErr("insert category", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, storeErr("insert category", err)
	}
	return &Category{ID: id, AssetTypeID: assetTypeID, Name: name, URL: url}, nil
}

// UpdateCategory persists changes for an existing category.
func (s *Store) UpdateCategory(ctx context.Context, category *Category) error {
	if category == nil {
		return storeErr("update category", errors.New("category is nil"))
	}
	if _, err := s.execWithRetry(ctx, `UPDATE category SET asset_type = ?, name = ?, url = ? WHERE id = ?`,
		category.AssetTypeID, category.Name, nullableString(category.URL), category.ID); err != nil {
		return storeErr("update category", err)
	}
	return nil
}

// CategoryByName returns the first category named name under assetTypeID, or nil.
func (s *Store) CategoryByName(ctx context.Context, assetTypeID int64, name string) (*Category, error) {
	row := s.db.QueryRowContext(ensureContext(ctx),
		`SELECT `+categoryColumns+` FROM category WHERE asset_type = ? AND name = ? ORDER BY id LIMIT 1`,
		assetTypeID, name)
	category, err := scanCategory(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, storeErr("category by name", err)
	}
	return category, nil
}

// CategoryByID returns the category with id, or nil.
func (s *Store) CategoryByID(ctx context.Context, id int64) (*Category, error) {
	row := s.db.QueryRowContext(ensureContext(ctx),
		`SELECT `+categoryColumns+` FROM category WHERE id = ?`, id)
	category, err := scanCategory(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, storeErr("category by id", err)
	}
	return category, nil
}

// Categories lists every category in listing order.
func (s *Store) Categories(ctx context.Context) ([]*Category, error) {
	return s.queryCategories(ctx, "list categories", `SELECT `+categoryColumns+` FROM category ORDER BY id`)
}

// CategoriesByType lists the categories owned by assetTypeID in listing order.
func (s *Store) CategoriesByType(ctx context.Context, assetTypeID int64) ([]*Category, error) {
	return s.queryCategories(ctx, "list categories by type",
		`SELECT `+categoryColumns+` FROM category WHERE asset_type = ? ORDER BY id`, assetTypeID)
}

func (s *Store) queryCategories(ctx context.Context, operation, query string, args ...any) ([]*Category, error) {
	rows, err := s.db.QueryContext(ensureContext(ctx), query, args...)
	if err != nil {
		return nil, storeErr(operation, err)
	}
	defer rows.Close()

	var out []*Category
	for rows.Next() {
		category, err := scanCategory(rows)
		if err != nil {
			return nil, storeErr(operation, err)
		}
		out = append(out, category)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr(operation, err)
	}
	return out, nil
}

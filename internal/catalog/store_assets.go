package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"assetmirror/internal/services"
)

// InsertAsset creates an asset row and assigns asset.ID.
func (s *Store) InsertAsset(ctx context.Context, asset *Asset) error {
	if asset == nil {
		return storeErr("insert asset", errors.New("asset is nil"))
	}
	if strings.TrimSpace(asset.URL) == "" {
		return storeErr("insert asset", errors.New("url is empty"))
	}
	args := append([]any{asset.CategoryID, asset.Name, asset.URL}, assetValues(asset)...)
	columns := strings.TrimPrefix(assetColumns, "id, ")
	query := fmt.Sprintf(`INSERT INTO asset (%s) VALUES (%s)`, columns, makePlaceholders(len(args)))
	res, err := s.execWithRetry(ctx, query, args...)
	if err != nil {
		return storeErr("insert asset", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return storeErr("insert asset", err)
	}
	asset.ID = id
	return nil
}

// UpdateAsset is the single write path for an existing asset row.
func (s *Store) UpdateAsset(ctx context.Context, asset *Asset) error {
	if asset == nil {
		return storeErr("update asset", errors.New("asset is nil"))
	}
	res, err := s.execWithRetry(ctx, `UPDATE asset SET
        category = ?, name = ?, url = ?,
        preview_image = ?, details_image = ?, variant_1_image = ?, variant_2_image = ?, variant_3_image = ?,
        have_preview_image_changed = ?, have_details_image_changed = ?, have_variant_1_image_changed = ?,
        have_variant_2_image_changed = ?, have_variant_3_image_changed = ?,
        last_change_date = ?, need_to_check = ?,
        format_sbsar = ?, format_sbs = ?, format_exr = ?, format_fbx = ?, format_glb = ?, format_mdl = ?,
        have_format_sbsar = ?, have_format_sbs = ?, have_format_exr = ?, have_format_fbx = ?, have_format_glb = ?, have_format_mdl = ?
        WHERE id = ?`,
		append(append([]any{asset.CategoryID, asset.Name, asset.URL}, assetValues(asset)...), asset.ID)...,
	)
	if err != nil {
		return storeErr("update asset", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return services.Wrap(services.ErrNotFound, "catalog", "update asset", fmt.Sprintf("asset %d does not exist", asset.ID), nil)
	}
	return nil
}

// ClearImageChanged resets the changed flags of the given slots after the
// fetch stage has re-downloaded them.
func (s *Store) ClearImageChanged(ctx context.Context, id int64, slots ...ImageSlot) error {
	if len(slots) == 0 {
		return nil
	}
	sets := make([]string, 0, len(slots))
	for _, slot := range slots {
		if slot < 0 || int(slot) >= SlotCount {
			return storeErr("clear image changed", fmt.Errorf("invalid slot %d", slot))
		}
		sets = append(sets, fmt.Sprintf("have_%s_image_changed = 0", slot))
	}
	query := `UPDATE asset SET ` + strings.Join(sets, ", ") + ` WHERE id = ?`
	if _, err := s.execWithRetry(ctx, query, id); err != nil {
		return storeErr("clear image changed", err)
	}
	return nil
}

// AssetByURL returns the asset whose source url equals url, or nil.
func (s *Store) AssetByURL(ctx context.Context, url string) (*Asset, error) {
	return s.queryAsset(ctx, "asset by url", `SELECT `+assetColumns+` FROM asset WHERE url = ? ORDER BY id LIMIT 1`, url)
}

// AssetByID returns the asset with id, or nil.
func (s *Store) AssetByID(ctx context.Context, id int64) (*Asset, error) {
	return s.queryAsset(ctx, "asset by id", `SELECT `+assetColumns+` FROM asset WHERE id = ?`, id)
}

// AssetsByName returns every asset whose display name equals name.
// Names are not unique; callers decide which match to use.
func (s *Store) AssetsByName(ctx context.Context, name string) ([]*Asset, error) {
	return s.queryAssets(ctx, "assets by name", `SELECT `+assetColumns+` FROM asset WHERE name = ? ORDER BY id`, name)
}

// AssetsByCategory lists the assets of one category in listing order.
func (s *Store) AssetsByCategory(ctx context.Context, categoryID int64) ([]*Asset, error) {
	return s.queryAssets(ctx, "assets by category", `SELECT `+assetColumns+` FROM asset WHERE category = ? ORDER BY id`, categoryID)
}

// AssetsNeedingCheck lists assets still awaiting a detailed scan.
func (s *Store) AssetsNeedingCheck(ctx context.Context) ([]*Asset, error) {
	return s.queryAssets(ctx, "assets needing check", `SELECT `+assetColumns+` FROM asset WHERE need_to_check = 1 ORDER BY id`)
}

// Assets lists every asset in listing order.
func (s *Store) Assets(ctx context.Context) ([]*Asset, error) {
	return s.queryAssets(ctx, "list assets", `SELECT `+assetColumns+` FROM asset ORDER BY id`)
}

func (s *Store) queryAsset(ctx context.Context, operation, query string, args ...any) (*Asset, error) {
	row := s.db.QueryRowContext(ensureContext(ctx), query, args...)
	asset, err := scanAsset(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, storeErr(operation, err)
	}
	return asset, nil
}

func (s *Store) queryAssets(ctx context.Context, operation, query string, args ...any) ([]*Asset, error) {
	rows, err := s.db.QueryContext(ensureContext(ctx), query, args...)
	if err != nil {
		return nil, storeErr(operation, err)
	}
	defer rows.Close()

	var out []*Asset
	for rows.Next() {
		asset, err := scanAsset(rows)
		if err != nil {
			return nil, storeErr(operation, err)
		}
		out = append(out, asset)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr(operation, err)
	}
	return out, nil
}

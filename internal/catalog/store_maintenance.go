package catalog

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"
)

// CategoryCounts returns the number of assets per category, grouped by type in
// listing order. Categories without assets are included with zero.
func (s *Store) CategoryCounts(ctx context.Context) ([]CategoryCount, error) {
	rows, err := s.db.QueryContext(ensureContext(ctx), `
        SELECT t.name, c.name, COUNT(a.id)
        FROM category c
        JOIN asset_type t ON t.id = c.asset_type
        LEFT JOIN asset a ON a.category = c.id
        GROUP BY c.id
        ORDER BY t.id, c.id`)
	if err != nil {
		return nil, storeErr("category counts", err)
	}
	defer rows.Close()

	var out []CategoryCount
	for rows.Next() {
		var count CategoryCount
		if err := rows.Scan(&count.AssetType, &count.Category, &count.Assets); err != nil {
			return nil, storeErr("category counts", err)
		}
		out = append(out, count)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr("category counts", err)
	}
	return out, nil
}

var expectedTables = map[string][]string{
	"asset_type": {"id", "name", "url"},
	"category":   {"id", "asset_type", "name", "url"},
	"asset": {
		"id", "category", "name", "url",
		"preview_image", "details_image", "variant_1_image", "variant_2_image", "variant_3_image",
		"have_preview_image_changed", "have_details_image_changed", "have_variant_1_image_changed",
		"have_variant_2_image_changed", "have_variant_3_image_changed",
		"last_change_date", "need_to_check",
		"format_sbsar", "format_sbs", "format_exr", "format_fbx", "format_glb", "format_mdl",
		"have_format_sbsar", "have_format_sbs", "have_format_exr", "have_format_fbx", "have_format_glb", "have_format_mdl",
	},
}

// CheckHealth returns diagnostic information about the catalog database.
func (s *Store) CheckHealth(ctx context.Context) (DatabaseHealth, error) {
	health := DatabaseHealth{DBPath: s.path}

	if s.path == "" {
		return health, storeErr("check health", errors.New("database path is unknown"))
	}

	info, err := os.Stat(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return health, nil
		}
		return health, storeErr("check health", fmt.Errorf("stat database: %w", err))
	}
	if info.IsDir() {
		return health, storeErr("check health", fmt.Errorf("database path %q is a directory", s.path))
	}
	health.DatabaseExists = true

	connCtx, cancel := context.WithTimeout(ensureContext(ctx), 2*time.Second)
	defer cancel()

	if err := s.db.PingContext(connCtx); err != nil {
		health.Error = err.Error()
		return health, storeErr("ping", err)
	}
	health.DatabaseReadable = true

	if err := s.db.QueryRowContext(connCtx, "SELECT version FROM schema_version LIMIT 1").Scan(&health.SchemaVersion); err != nil {
		health.Error = err.Error()
		return health, storeErr("read schema version", err)
	}

	for _, table := range []string{"asset_type", "category", "asset"} {
		columns, err := s.tableColumns(connCtx, table)
		if err != nil {
			health.Error = err.Error()
			return health, storeErr("table info", err)
		}
		if len(columns) == 0 {
			health.MissingColumns = append(health.MissingColumns, table+".*")
			continue
		}
		health.TablesPresent = append(health.TablesPresent, table)
		present := make(map[string]struct{}, len(columns))
		for _, col := range columns {
			present[col] = struct{}{}
		}
		for _, col := range expectedTables[table] {
			if _, ok := present[col]; !ok {
				health.MissingColumns = append(health.MissingColumns, table+"."+col)
			}
		}
	}

	counts := []struct {
		query string
		dest  *int
	}{
		{"SELECT COUNT(*) FROM asset_type", &health.AssetTypes},
		{"SELECT COUNT(*) FROM category", &health.Categories},
		{"SELECT COUNT(*) FROM asset", &health.Assets},
		{"SELECT COUNT(*) FROM asset WHERE need_to_check = 1", &health.PendingDetail},
		{`SELECT COUNT(*) FROM asset WHERE have_preview_image_changed = 1 OR have_details_image_changed = 1
            OR have_variant_1_image_changed = 1 OR have_variant_2_image_changed = 1 OR have_variant_3_image_changed = 1`, &health.PendingFetch},
	}
	if len(health.MissingColumns) == 0 {
		for _, c := range counts {
			if err := s.db.QueryRowContext(connCtx, c.query).Scan(c.dest); err != nil {
				health.Error = err.Error()
				return health, storeErr("count rows", err)
			}
		}
	}

	var integrityResult string
	if err := s.db.QueryRowContext(connCtx, "PRAGMA integrity_check").Scan(&integrityResult); err != nil {
		health.Error = err.Error()
		return health, storeErr("integrity check", err)
	}
	health.IntegrityCheck = strings.EqualFold(integrityResult, "ok")

	return health, nil
}

func (s *Store) tableColumns(ctx context.Context, table string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, fmt.Sprintf("PRAGMA table_info(%s)", table))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var columns []string
	for rows.Next() {
		var (
			cid     int
			name    string
			typeStr string
			notNull int
			dflt    any
			pk      int
		)
		if err := rows.Scan(&cid, &name, &typeStr, &notNull, &dflt, &pk); err != nil {
			return nil, err
		}
		columns = append(columns, name)
	}
	return columns, rows.Err()
}

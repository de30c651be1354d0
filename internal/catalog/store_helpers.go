package catalog

import (
	"database/sql"
	"errors"
	"time"
)

const assetTypeColumns = "id, name, url"

const categoryColumns = "id, asset_type, name, url"

const assetColumns = `id, category, name, url,
    preview_image, details_image, variant_1_image, variant_2_image, variant_3_image,
    have_preview_image_changed, have_details_image_changed, have_variant_1_image_changed,
    have_variant_2_image_changed, have_variant_3_image_changed,
    last_change_date, need_to_check,
    format_sbsar, format_sbs, format_exr, format_fbx, format_glb, format_mdl,
    have_format_sbsar, have_format_sbs, have_format_exr, have_format_fbx, have_format_glb, have_format_mdl`

type rowScanner interface{ Scan(dest ...any) error }

func scanAssetType(scanner rowScanner) (*AssetType, error) {
	var (
		assetType AssetType
		url       sql.NullString
	)
	if err := scanner.Scan(&assetType.ID, &assetType.Name, &url); err != nil {
		return nil, err
	}
	assetType.URL = url.String
	return &assetType, nil
}

func scanCategory(scanner rowScanner) (*Category, error) {
	var (
		category Category
		url      sql.NullString
	)
	if err := scanner.Scan(&category.ID, &category.AssetTypeID, &category.Name, &url); err != nil {
		return nil, err
	}
	category.URL = url.String
	return &category, nil
}

func scanAsset(scanner rowScanner) (*Asset, error) {
	var (
		asset      Asset
		images     [SlotCount]sql.NullString
		changed    [SlotCount]int64
		lastChange sql.NullString
		needCheck  int64
		formats    [FormatCount]int64
		have       [FormatCount]int64
	)
	dest := []any{&asset.ID, &asset.CategoryID, &asset.Name, &asset.URL}
	for i := range images {
		dest = append(dest, &images[i])
	}
	for i := range changed {
		dest = append(dest, &changed[i])
	}
	dest = append(dest, &lastChange, &needCheck)
	for i := range formats {
		dest = append(dest, &formats[i])
	}
	for i := range have {
		dest = append(dest, &have[i])
	}
	if err := scanner.Scan(dest...); err != nil {
		return nil, err
	}

	for i := range images {
		asset.Images[i] = images[i].String
		asset.ImageChanged[i] = changed[i] != 0
	}
	for i := range formats {
		asset.Formats[i] = formats[i] != 0
		asset.HaveFormats[i] = have[i] != 0
	}
	asset.NeedToCheck = needCheck != 0
	if ts, err := parseTimeString(lastChange.String); err == nil {
		asset.LastChange = ts
	}
	return &asset, nil
}

// assetValues returns the column values following id/category/name/url in
// assetColumns order.
func assetValues(asset *Asset) []any {
	values := make([]any, 0, 2*SlotCount+2+2*FormatCount)
	for _, image := range asset.Images {
		values = append(values, nullableString(image))
	}
	for _, changed := range asset.ImageChanged {
		values = append(values, boolToInt(changed))
	}
	values = append(values, nullableTime(asset.LastChange), boolToInt(asset.NeedToCheck))
	for _, offered := range asset.Formats {
		values = append(values, boolToInt(offered))
	}
	for _, possessed := range asset.HaveFormats {
		values = append(values, boolToInt(possessed))
	}
	return values
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}

func nullableTime(value time.Time) any {
	if value.IsZero() {
		return nil
	}
	return value.UTC().Format(time.RFC3339Nano)
}

func boolToInt(value bool) int {
	if value {
		return 1
	}
	return 0
}

func parseTimeString(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, errors.New("empty")
	}
	if t, err := time.Parse(time.RFC3339Nano, value); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02 15:04:05.999999", value)
}

func makePlaceholders(count int) string {
	if count <= 0 {
		return ""
	}
	placeholders := make([]byte, 0, count*2)
	for i := 0; i < count; i++ {
		if i > 0 {
			placeholders = append(placeholders, ',')
		}
		placeholders = append(placeholders, '?')
	}
	return string(placeholders)
}

package catalog

import "time"

// AssetType is the top taxonomy level (material family).
type AssetType struct {
	ID   int64
	Name string
	URL  string
}

// Category groups assets under exactly one AssetType.
type Category struct {
	ID          int64
	AssetTypeID int64
	Name        string
	URL         string
}

// ImageSlot enumerates the image artifacts tracked per asset.
type ImageSlot int

const (
	SlotPreview ImageSlot = iota
	SlotDetails
	SlotVariant1
	SlotVariant2
	SlotVariant3
)

// SlotCount is the number of tracked image slots.
const SlotCount = 5

// MaxVariants is the number of positional variant slots.
const MaxVariants = 3

var slotNames = [SlotCount]string{"preview", "details", "variant_1", "variant_2", "variant_3"}

var slotFiles = [SlotCount]string{"Preview.png", "Details.png", "Variant1.png", "Variant2.png", "Variant3.png"}

// AllSlots lists the image slots in storage order.
func AllSlots() []ImageSlot {
	return []ImageSlot{SlotPreview, SlotDetails, SlotVariant1, SlotVariant2, SlotVariant3}
}

func (s ImageSlot) String() string {
	if s < 0 || int(s) >= SlotCount {
		return "unknown"
	}
	return slotNames[s]
}

// FileName returns the local file name the fetch stage writes for the slot.
func (s ImageSlot) FileName() string {
	if s < 0 || int(s) >= SlotCount {
		return ""
	}
	return slotFiles[s]
}

// VariantSlot returns the slot for the 1-based variant index n.
func VariantSlot(n int) (ImageSlot, bool) {
	if n < 1 || n > MaxVariants {
		return 0, false
	}
	return SlotVariant1 + ImageSlot(n-1), true
}

// Asset is one catalog item. URL is the natural key.
type Asset struct {
	ID           int64
	CategoryID   int64
	Name         string
	URL          string
	Images       [SlotCount]string
	ImageChanged [SlotCount]bool
	LastChange   time.Time
	NeedToCheck  bool
	Formats      FormatSet
	HaveFormats  FormatSet
}

// Image returns the stored URL for slot.
func (a *Asset) Image(slot ImageSlot) string {
	return a.Images[slot]
}

// HasChangedImages reports whether any slot awaits a re-fetch.
func (a *Asset) HasChangedImages() bool {
	for _, changed := range a.ImageChanged {
		if changed {
			return true
		}
	}
	return false
}

// Completeness returns the offered and possessed format counts.
func (a *Asset) Completeness() (count, have int) {
	for _, f := range AllFormats() {
		if !a.Formats.Has(f) {
			continue
		}
		count++
		if a.HaveFormats.Has(f) {
			have++
		}
	}
	return count, have
}

// MissingFormats returns offered formats not yet possessed, in canonical order.
func (a *Asset) MissingFormats() []Format {
	var missing []Format
	for _, f := range AllFormats() {
		if a.Formats.Has(f) && !a.HaveFormats.Has(f) {
			missing = append(missing, f)
		}
	}
	return missing
}

// CategoryCount reports asset totals for one category.
type CategoryCount struct {
	AssetType string
	Category  string
	Assets    int
}

// DatabaseHealth captures diagnostic information about the catalog database.
type DatabaseHealth struct {
	DBPath           string
	DatabaseExists   bool
	DatabaseReadable bool
	SchemaVersion    int
	TablesPresent    []string
	MissingColumns   []string
	IntegrityCheck   bool
	AssetTypes       int
	Categories       int
	Assets           int
	PendingDetail    int
	PendingFetch     int
	Error            string
}

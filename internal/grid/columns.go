// Package grid turns the product inventory into the responsive table shown by
// the admin UI: which columns fit the viewport, and what each cell displays.
package grid

import "strings"

// ColumnKey identifies a table column for visibility and sorting lookups.
type ColumnKey string

const (
	ColumnProductName  ColumnKey = "productname"
	ColumnPrice        ColumnKey = "price"
	ColumnAvailability ColumnKey = "availability"
	ColumnStock        ColumnKey = "stock"
	ColumnCategory     ColumnKey = "category"
)

// Breakpoints, in CSS pixels. A width equal to a breakpoint falls in the narrower tier.
const (
	WideBreakpoint   = 800
	MediumBreakpoint = 550
)

// Width tiers, used for logging and metrics.
const (
	TierWide   = "wide"
	TierMedium = "medium"
	TierNarrow = "narrow"
)

// TextAlign is the horizontal alignment hint for a column's cells.
type TextAlign string

const (
	AlignStart TextAlign = "start"
	AlignEnd   TextAlign = "end"
)

// Column describes one table column for the host renderer.
type Column struct {
	Key      ColumnKey `json:"key"`
	Header   string    `json:"header"`
	FlexGrow int       `json:"flex_grow"`
	Sortable bool      `json:"sortable"`
	Align    TextAlign `json:"align"`
	Visible  bool      `json:"visible"`
}

var columnDefs = []Column{
	{Key: ColumnProductName, Header: "Product name", FlexGrow: 20, Sortable: true, Align: AlignStart},
	{Key: ColumnPrice, Header: "Price", FlexGrow: 3, Sortable: true, Align: AlignEnd},
	{Key: ColumnAvailability, Header: "Availability", FlexGrow: 5, Sortable: true, Align: AlignStart},
	{Key: ColumnStock, Header: "Stock count", FlexGrow: 3, Sortable: true, Align: AlignEnd},
	{Key: ColumnCategory, Header: "Category", FlexGrow: 12, Sortable: true, Align: AlignStart},
}

var visibleByTier = map[string][]ColumnKey{
	TierWide:   {ColumnProductName, ColumnPrice, ColumnAvailability, ColumnStock, ColumnCategory},
	TierMedium: {ColumnProductName, ColumnPrice, ColumnCategory},
	TierNarrow: {ColumnProductName, ColumnPrice},
}

// Tier classifies a viewport width. Negative widths are narrow.
func Tier(width int) string {
	switch {
	case width > WideBreakpoint:
		return TierWide
	case width > MediumBreakpoint:
		return TierMedium
	default:
		return TierNarrow
	}
}

// VisibleColumns returns the keys shown at width, in column order.
func VisibleColumns(width int) []ColumnKey {
	keys := visibleByTier[Tier(width)]
	out := make([]ColumnKey, len(keys))
	copy(out, keys)
	return out
}

// Columns returns every column descriptor in display order with Visible set for width.
func Columns(width int) []Column {
	visible := make(map[ColumnKey]bool, len(columnDefs))
	for _, key := range visibleByTier[Tier(width)] {
		visible[key] = true
	}

	out := make([]Column, len(columnDefs))
	for i, def := range columnDefs {
		def.Visible = visible[def.Key]
		out[i] = def
	}
	return out
}

// ColumnKeys lists all keys in display order.
func ColumnKeys() []ColumnKey {
	out := make([]ColumnKey, len(columnDefs))
	for i, def := range columnDefs {
		out[i] = def.Key
	}
	return out
}

// ParseColumnKey resolves raw input (case-insensitive) to a known key.
func ParseColumnKey(value string) (ColumnKey, bool) {
	normalized := ColumnKey(strings.ToLower(strings.TrimSpace(value)))
	for _, def := range columnDefs {
		if def.Key == normalized {
			return normalized, true
		}
	}
	return "", false
}

package grid

import (
	"cmp"
	"slices"
	"strings"

	"github.com/angelmondragon/bookstore-admin/pkg/db/models"
)

// Direction is the sort order requested for a column.
type Direction string

const (
	Ascending  Direction = "asc"
	Descending Direction = "desc"
)

// ParseDirection accepts "asc"/"desc" (any case); empty means ascending.
func ParseDirection(value string) (Direction, bool) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", string(Ascending):
		return Ascending, true
	case string(Descending):
		return Descending, true
	default:
		return "", false
	}
}

// Compare orders a and b by column: price numerically, availability by declared
// enum order, stock by count, name and category by their displayed text.
func Compare(key ColumnKey, a, b models.Product) int {
	switch key {
	case ColumnPrice:
		return a.Price.Cmp(b.Price)
	case ColumnAvailability:
		return cmp.Compare(a.Availability.Rank(), b.Availability.Rank())
	case ColumnStock:
		return cmp.Compare(a.StockCount, b.StockCount)
	case ColumnProductName, ColumnCategory:
		return strings.Compare(FormatCell(key, a), FormatCell(key, b))
	default:
		return 0
	}
}

// SortProducts stably sorts products in place by key. Unknown keys leave the order untouched.
func SortProducts(products []models.Product, key ColumnKey, dir Direction) {
	if _, ok := ParseColumnKey(string(key)); !ok {
		return
	}
	slices.SortStableFunc(products, func(a, b models.Product) int {
		if dir == Descending {
			return Compare(key, b, a)
		}
		return Compare(key, a, b)
	})
}

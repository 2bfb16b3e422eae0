package grid

import (
	"cmp"
	"slices"
	"strconv"
	"strings"

	"github.com/angelmondragon/bookstore-admin/pkg/db/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	currencySuffix   = " €"
	stockPlaceholder = "-"
	categorySep      = ", "
)

// Row holds the display text of one product, keyed by column.
type Row struct {
	ProductID uuid.UUID            `json:"product_id"`
	Cells     map[ColumnKey]string `json:"cells"`
}

// FormatPrice renders amount with exactly two fraction digits, a '.' separator
// and no grouping, followed by " €". Halves round away from zero.
func FormatPrice(amount decimal.Decimal) string {
	return amount.StringFixed(2) + currencySuffix
}

// FormatStockCount renders a stock count; zero (and anything below) means the
// count is not tracked and shows as "-".
func FormatStockCount(count int) string {
	if count <= 0 {
		return stockPlaceholder
	}
	return strconv.Itoa(count)
}

// FormatCategories joins category names ordered by category ID, never by name.
func FormatCategories(categories []models.Category) string {
	if len(categories) == 0 {
		return ""
	}

	sorted := make([]models.Category, len(categories))
	copy(sorted, categories)
	slices.SortStableFunc(sorted, func(a, b models.Category) int {
		return cmp.Compare(a.ID, b.ID)
	})

	names := make([]string, len(sorted))
	for i, category := range sorted {
		names[i] = category.Name
	}
	return strings.Join(names, categorySep)
}

// FormatAvailability renders the availability label; unknown values render empty.
func FormatAvailability(product models.Product) string {
	if !product.Availability.IsValid() {
		return ""
	}
	return product.Availability.String()
}

// FormatCell renders a single column of product.
func FormatCell(key ColumnKey, product models.Product) string {
	switch key {
	case ColumnProductName:
		return product.ProductName
	case ColumnPrice:
		return FormatPrice(product.Price)
	case ColumnAvailability:
		return FormatAvailability(product)
	case ColumnStock:
		return FormatStockCount(product.StockCount)
	case ColumnCategory:
		return FormatCategories(product.Categories)
	default:
		return ""
	}
}

// FormatRow renders every column of product, hidden ones included, so the host
// can toggle visibility on resize without refetching.
func FormatRow(product models.Product) Row {
	cells := make(map[ColumnKey]string, len(columnDefs))
	for _, def := range columnDefs {
		cells[def.Key] = FormatCell(def.Key, product)
	}
	return Row{ProductID: product.ID, Cells: cells}
}

// FormatRows renders products in their given order.
func FormatRows(products []models.Product) []Row {
	rows := make([]Row, len(products))
	for i, product := range products {
		rows[i] = FormatRow(product)
	}
	return rows
}

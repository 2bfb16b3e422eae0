package grid

import (
	"sync"

	"github.com/angelmondragon/bookstore-admin/pkg/db/models"
	"github.com/google/uuid"
)

// Table is one session's view of the product grid: the items it shows, the
// last viewport width reported by the host, and the selected row.
type Table struct {
	mu       sync.RWMutex
	items    []models.Product
	width    int
	hasWidth bool
	selected uuid.UUID
}

func NewTable(items []models.Product) *Table {
	t := &Table{}
	t.SetItems(items)
	return t
}

// SetItems replaces the rows. A selection whose product is gone is cleared.
func (t *Table) SetItems(items []models.Product) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.items = make([]models.Product, len(items))
	copy(t.items, items)
	if t.selected != uuid.Nil && t.indexOf(t.selected) < 0 {
		t.selected = uuid.Nil
	}
}

// Resize records a width-change notification and returns the new layout.
func (t *Table) Resize(width int) []Column {
	t.mu.Lock()
	t.width = width
	t.hasWidth = true
	t.mu.Unlock()
	return Columns(width)
}

// Width returns the last reported width, or false before the first report.
func (t *Table) Width() (int, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.width, t.hasWidth
}

// Columns returns the layout for the last reported width. Until the host has
// reported one it returns false and no layout, rather than guessing.
func (t *Table) Columns() ([]Column, bool) {
	width, ok := t.Width()
	if !ok {
		return nil, false
	}
	return Columns(width), true
}

// Items returns a copy of the current rows.
func (t *Table) Items() []models.Product {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make([]models.Product, len(t.items))
	copy(out, t.items)
	return out
}

// Rows formats the current items.
func (t *Table) Rows() []Row {
	return FormatRows(t.Items())
}

// Sort reorders the items by key.
func (t *Table) Sort(key ColumnKey, dir Direction) {
	t.mu.Lock()
	defer t.mu.Unlock()
	SortProducts(t.items, key, dir)
}

// Select marks the product with id as selected. It reports false, leaving the
// selection unchanged, when no such row exists.
func (t *Table) Select(id uuid.UUID) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.indexOf(id) < 0 {
		return false
	}
	t.selected = id
	return true
}

func (t *Table) ClearSelection() {
	t.mu.Lock()
	t.selected = uuid.Nil
	t.mu.Unlock()
}

// Selected returns the selected product, if any.
func (t *Table) Selected() (models.Product, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if t.selected == uuid.Nil {
		return models.Product{}, false
	}
	idx := t.indexOf(t.selected)
	if idx < 0 {
		return models.Product{}, false
	}
	return t.items[idx], true
}

// Refresh swaps in an edited copy of a product already in the table. It reports
// false when the product is not shown.
func (t *Table) Refresh(product models.Product) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	idx := t.indexOf(product.ID)
	if idx < 0 {
		return false
	}
	t.items[idx] = product
	return true
}

func (t *Table) indexOf(id uuid.UUID) int {
	for i := range t.items {
		if t.items[i].ID == id {
			return i
		}
	}
	return -1
}

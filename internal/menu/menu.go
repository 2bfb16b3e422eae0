// Package menu decides which navigation entries a signed-in user sees.
package menu

import (
	"strings"

	"github.com/angelmondragon/bookstore-admin/pkg/enums"
)

// Item is one navigation entry. An empty RequiredRole means any signed-in user.
type Item struct {
	Label        string     `json:"label"`
	Path         string     `json:"path"`
	RequiredRole enums.Role `json:"-"`
}

var defaultItems = []Item{
	{Label: "Inventory", Path: "/inventory"},
	{Label: "About", Path: "/about"},
	{Label: "Admin", Path: "/admin", RequiredRole: enums.RoleAdmin},
}

// DefaultItems returns the application menu in display order.
func DefaultItems() []Item {
	out := make([]Item, len(defaultItems))
	copy(out, defaultItems)
	return out
}

// Visible reports whether role may see item. Unknown roles see nothing.
func Visible(role enums.Role, item Item) bool {
	if !role.IsValid() {
		return false
	}
	if item.RequiredRole == "" {
		return true
	}
	return item.RequiredRole == role
}

// ItemsFor filters the default menu for role, keeping display order.
func ItemsFor(role enums.Role) []Item {
	return Filter(role, defaultItems)
}

// Filter keeps the items of menu that role may see.
func Filter(role enums.Role, menu []Item) []Item {
	out := make([]Item, 0, len(menu))
	for _, item := range menu {
		if Visible(role, item) {
			out = append(out, item)
		}
	}
	return out
}

// CountLabel counts items whose label equals label, ignoring case.
func CountLabel(items []Item, label string) int {
	count := 0
	for _, item := range items {
		if strings.EqualFold(item.Label, label) {
			count++
		}
	}
	return count
}

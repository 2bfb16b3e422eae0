package repo

import (
	"context"
	"fmt"

	"gorm.io/gorm"
)

// ProductCategoriesTable is the join table linking books to categories.
const ProductCategoriesTable = "product_categories"

// Base is embedded by the catalog repositories.
type Base struct {
	db *gorm.DB
}

func NewBase(db *gorm.DB) Base {
	return Base{db: db}
}

// DB returns the connection bound to ctx; a nil ctx returns the raw connection.
func (b Base) DB(ctx context.Context) *gorm.DB {
	if ctx == nil {
		return b.db
	}
	return b.db.WithContext(ctx)
}

// RequireAffected turns a write that matched no row into gorm.ErrRecordNotFound.
func RequireAffected(res *gorm.DB) error {
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// UnlinkCategories drops join rows where column ("product_id" or "category_id") equals id.
func UnlinkCategories(tx *gorm.DB, column string, id any) error {
	switch column {
	case "product_id", "category_id":
	default:
		return fmt.Errorf("unsupported link column %q", column)
	}
	return tx.Exec(fmt.Sprintf("DELETE FROM %s WHERE %s = ?", ProductCategoriesTable, column), id).Error
}

package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/angelmondragon/bookstore-admin/pkg/enums"
)

// Product is a book listed in the inventory.
type Product struct {
	ID           uuid.UUID          `gorm:"column:id;type:uuid;primaryKey"`
	ProductName  string             `gorm:"column:product_name;not null"`
	Price        decimal.Decimal    `gorm:"column:price;type:numeric(12,2);not null"`
	Availability enums.Availability `gorm:"column:availability;type:text;not null"`
	StockCount   int                `gorm:"column:stock_count;not null;default:0"`
	Categories   []Category         `gorm:"many2many:product_categories;joinForeignKey:ProductID;joinReferences:CategoryID"`
	CreatedAt    time.Time          `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time          `gorm:"column:updated_at;autoUpdateTime"`
}

// BeforeCreate assigns the primary key client side so sqlite and postgres behave alike.
func (p *Product) BeforeCreate(*gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

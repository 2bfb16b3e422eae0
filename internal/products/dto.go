package product

import (
	"time"

	"github.com/angelmondragon/bookstore-admin/internal/grid"
	"github.com/angelmondragon/bookstore-admin/pkg/db/models"
	"github.com/angelmondragon/bookstore-admin/pkg/enums"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProductDTO is the product payload returned to clients. Display carries the
// same formatted cells the grid renders for this product.
type ProductDTO struct {
	ID           uuid.UUID          `json:"id"`
	ProductName  string             `json:"product_name"`
	Price        decimal.Decimal    `json:"price"`
	Availability enums.Availability `json:"availability"`
	StockCount   int                `json:"stock_count"`
	Categories   []CategoryDTO      `json:"categories"`
	Display      grid.Row           `json:"display"`
	CreatedAt    time.Time          `json:"created_at"`
	UpdatedAt    time.Time          `json:"updated_at"`
}

// CategoryDTO is the category reference embedded in a product.
type CategoryDTO struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

func mapProductDTO(p models.Product) ProductDTO {
	categories := make([]CategoryDTO, 0, len(p.Categories))
	for _, c := range p.Categories {
		categories = append(categories, CategoryDTO{ID: c.ID, Name: c.Name})
	}
	return ProductDTO{
		ID:           p.ID,
		ProductName:  p.ProductName,
		Price:        p.Price,
		Availability: p.Availability,
		StockCount:   p.StockCount,
		Categories:   categories,
		Display:      grid.FormatRow(p),
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}

func mapProductDTOs(rows []models.Product) []ProductDTO {
	out := make([]ProductDTO, 0, len(rows))
	for _, row := range rows {
		out = append(out, mapProductDTO(row))
	}
	return out
}

package product

import (
	"context"

	"github.com/angelmondragon/bookstore-admin/internal/repo"
	"github.com/angelmondragon/bookstore-admin/pkg/db/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository persists books and their category links.
type Repository struct {
	repo.Base
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{Base: repo.NewBase(db)}
}

// WithTx returns a repository bound to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{Base: repo.NewBase(tx)}
}

func preloadCategories(db *gorm.DB) *gorm.DB {
	return db.Preload("Categories", func(db *gorm.DB) *gorm.DB {
		return db.Order("categories.id ASC")
	})
}

// ListAll returns the whole inventory ordered by name, categories preloaded.
func (r *Repository) ListAll(ctx context.Context) ([]models.Product, error) {
	var rows []models.Product
	err := preloadCategories(r.DB(ctx)).
		Order("product_name ASC").
		Order("id ASC").
		Find(&rows).
		Error
	return rows, err
}

// FindByID loads a product with its categories.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	var product models.Product
	if err := preloadCategories(r.DB(ctx)).First(&product, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

// FindCategoriesByIDs returns the categories that exist among ids, ordered by ID.
func (r *Repository) FindCategoriesByIDs(ctx context.Context, ids []int64) ([]models.Category, error) {
	if len(ids) == 0 {
		return []models.Category{}, nil
	}
	var rows []models.Category
	err := r.DB(ctx).
		Where("id IN ?", ids).
		Order("id ASC").
		Find(&rows).
		Error
	return rows, err
}

// CreateProduct inserts a new product row without touching category links.
func (r *Repository) CreateProduct(ctx context.Context, product *models.Product) (*models.Product, error) {
	if err := r.DB(ctx).Omit("Categories").Create(product).Error; err != nil {
		return nil, err
	}
	return product, nil
}

// UpdateProduct saves the scalar columns of an existing product.
func (r *Repository) UpdateProduct(ctx context.Context, product *models.Product) (*models.Product, error) {
	if err := r.DB(ctx).Omit("Categories").Save(product).Error; err != nil {
		return nil, err
	}
	return product, nil
}

// ReplaceCategories swaps the product's category links for categories.
func (r *Repository) ReplaceCategories(ctx context.Context, product *models.Product, categories []models.Category) error {
	assoc := r.DB(ctx).Model(product).Association("Categories")
	if len(categories) == 0 {
		return assoc.Clear()
	}
	return assoc.Replace(categories)
}

// DeleteProduct removes a product and its category links. It returns
// gorm.ErrRecordNotFound when no row matched.
func (r *Repository) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	tx := r.DB(ctx)
	if err := repo.UnlinkCategories(tx, "product_id", id); err != nil {
		return err
	}
	return repo.RequireAffected(tx.Where("id = ?", id).Delete(&models.Product{}))
}

package categories

import (
	"context"

	"github.com/angelmondragon/bookstore-admin/internal/repo"
	"github.com/angelmondragon/bookstore-admin/pkg/db/models"
	"gorm.io/gorm"
)

// Repository persists product categories.
type Repository struct {
	repo.Base
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{Base: repo.NewBase(db)}
}

// List returns every category ordered by ID.
func (r *Repository) List(ctx context.Context) ([]models.Category, error) {
	var rows []models.Category
	err := r.DB(ctx).Order("id ASC").Find(&rows).Error
	return rows, err
}

func (r *Repository) FindByID(ctx context.Context, id int64) (*models.Category, error) {
	var category models.Category
	if err := r.DB(ctx).First(&category, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *Repository) Create(ctx context.Context, category *models.Category) error {
	return r.DB(ctx).Create(category).Error
}

// Rename updates the name of category id, returning gorm.ErrRecordNotFound when absent.
func (r *Repository) Rename(ctx context.Context, id int64, name string) error {
	return repo.RequireAffected(r.DB(ctx).Model(&models.Category{}).Where("id = ?", id).Update("name", name))
}

// Delete removes the category and unlinks it from every product.
func (r *Repository) Delete(ctx context.Context, id int64) error {
	return r.DB(ctx).Transaction(func(tx *gorm.DB) error {
		if err := repo.UnlinkCategories(tx, "category_id", id); err != nil {
			return err
		}
		return repo.RequireAffected(tx.Where("id = ?", id).Delete(&models.Category{}))
	})
}

package product

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/angelmondragon/bookstore-admin/pkg/db/models"
	"github.com/angelmondragon/bookstore-admin/pkg/enums"
	pkgerrors "github.com/angelmondragon/bookstore-admin/pkg/errors"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const maxProductNameLength = 255

// maxPrice is the largest value a NUMERIC(12,2) price column holds.
var maxPrice = decimal.RequireFromString("9999999999.99")

// Service exposes inventory management operations.
type Service interface {
	ListProducts(ctx context.Context) ([]ProductDTO, error)
	GetProduct(ctx context.Context, productID uuid.UUID) (*ProductDTO, error)
	CreateProduct(ctx context.Context, input CreateProductInput) (*ProductDTO, error)
	UpdateProduct(ctx context.Context, productID uuid.UUID, input UpdateProductInput) (*ProductDTO, error)
	DeleteProduct(ctx context.Context, productID uuid.UUID) error
}

// CreateProductInput holds the validated payload to create a product.
type CreateProductInput struct {
	ProductName  string
	Price        decimal.Decimal
	Availability enums.Availability
	StockCount   int
	CategoryIDs  []int64
}

// UpdateProductInput holds optional mutation values for a product. A non-nil
// CategoryIDs replaces every category link, an empty slice clears them.
type UpdateProductInput struct {
	ProductName  *string
	Price        *decimal.Decimal
	Availability *enums.Availability
	StockCount   *int
	CategoryIDs  *[]int64
}

type transactor interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type service struct {
	repo *Repository
	tx   transactor
}

// NewService constructs a product service instance.
func NewService(repo *Repository, tx transactor) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("product repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	return &service{repo: repo, tx: tx}, nil
}

func (s *service) ListProducts(ctx context.Context) ([]ProductDTO, error) {
	rows, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list products")
	}
	return mapProductDTOs(rows), nil
}

func (s *service) GetProduct(ctx context.Context, productID uuid.UUID) (*ProductDTO, error) {
	product, err := s.load(ctx, s.repo, productID)
	if err != nil {
		return nil, err
	}
	dto := mapProductDTO(*product)
	return &dto, nil
}

// CreateProduct inserts the product and links its categories in one transaction.
func (s *service) CreateProduct(ctx context.Context, input CreateProductInput) (*ProductDTO, error) {
	name, err := normalizeProductName(input.ProductName)
	if err != nil {
		return nil, err
	}
	if err := validatePrice(input.Price); err != nil {
		return nil, err
	}
	if err := validateAvailability(input.Availability); err != nil {
		return nil, err
	}
	if err := validateStockCount(input.StockCount); err != nil {
		return nil, err
	}

	var createdID uuid.UUID
	if err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)

		categories, err := resolveCategories(ctx, txRepo, input.CategoryIDs)
		if err != nil {
			return err
		}

		product := &models.Product{
			ProductName:  name,
			Price:        input.Price.Round(2),
			Availability: input.Availability,
			StockCount:   input.StockCount,
		}
		created, err := txRepo.CreateProduct(ctx, product)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert product")
		}
		createdID = created.ID

		if len(categories) > 0 {
			if err := txRepo.ReplaceCategories(ctx, created, categories); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: link categories")
			}
		}
		return nil
	}); err != nil {
		return nil, wrapTxError(err, "create product")
	}

	return s.GetProduct(ctx, createdID)
}

// UpdateProduct applies the provided fields and, when given, replaces the category links.
func (s *service) UpdateProduct(ctx context.Context, productID uuid.UUID, input UpdateProductInput) (*ProductDTO, error) {
	if input.ProductName != nil {
		name, err := normalizeProductName(*input.ProductName)
		if err != nil {
			return nil, err
		}
		input.ProductName = &name
	}
	if input.Price != nil {
		if err := validatePrice(*input.Price); err != nil {
			return nil, err
		}
	}
	if input.Availability != nil {
		if err := validateAvailability(*input.Availability); err != nil {
			return nil, err
		}
	}
	if input.StockCount != nil {
		if err := validateStockCount(*input.StockCount); err != nil {
			return nil, err
		}
	}

	if err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)

		product, err := s.load(ctx, txRepo, productID)
		if err != nil {
			return err
		}

		applyUpdateToProduct(product, input)
		if _, err := txRepo.UpdateProduct(ctx, product); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: update product")
		}

		if input.CategoryIDs != nil {
			categories, err := resolveCategories(ctx, txRepo, *input.CategoryIDs)
			if err != nil {
				return err
			}
			if err := txRepo.ReplaceCategories(ctx, product, categories); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: replace categories")
			}
		}
		return nil
	}); err != nil {
		return nil, wrapTxError(err, "update product")
	}

	return s.GetProduct(ctx, productID)
}

func (s *service) DeleteProduct(ctx context.Context, productID uuid.UUID) error {
	if err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		return s.repo.WithTx(tx).DeleteProduct(ctx, productID)
	}); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.NotFound("product")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete product")
	}
	return nil
}

func (s *service) load(ctx context.Context, repo *Repository, productID uuid.UUID) (*models.Product, error) {
	product, err := repo.FindByID(ctx, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.NotFound("product")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}
	return product, nil
}

// resolveCategories loads the requested categories and fails when any ID is unknown.
func resolveCategories(ctx context.Context, repo *Repository, ids []int64) ([]models.Category, error) {
	unique := dedupeIDs(ids)
	categories, err := repo.FindCategoriesByIDs(ctx, unique)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load categories")
	}
	if len(categories) == len(unique) {
		return categories, nil
	}

	found := make(map[int64]struct{}, len(categories))
	for _, c := range categories {
		found[c.ID] = struct{}{}
	}
	missing := make([]int64, 0, len(unique)-len(categories))
	for _, id := range unique {
		if _, ok := found[id]; !ok {
			missing = append(missing, id)
		}
	}
	return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown category ids").
		WithDetails(map[string]any{"category_ids": missing})
}

func dedupeIDs(ids []int64) []int64 {
	out := slices.Clone(ids)
	slices.Sort(out)
	return slices.Compact(out)
}

func applyUpdateToProduct(product *models.Product, input UpdateProductInput) {
	if input.ProductName != nil {
		product.ProductName = strings.TrimSpace(*input.ProductName)
	}
	if input.Price != nil {
		product.Price = input.Price.Round(2)
	}
	if input.Availability != nil {
		product.Availability = *input.Availability
	}
	if input.StockCount != nil {
		product.StockCount = *input.StockCount
	}
}

func normalizeProductName(name string) (string, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "product_name is required")
	}
	if utf8.RuneCountInString(trimmed) > maxProductNameLength {
		return "", pkgerrors.Newf(pkgerrors.CodeValidation, "product_name must be at most %d characters", maxProductNameLength)
	}
	return trimmed, nil
}

func validatePrice(price decimal.Decimal) error {
	if price.IsNegative() {
		return pkgerrors.New(pkgerrors.CodeValidation, "price must be zero or greater")
	}
	if price.Round(2).GreaterThan(maxPrice) {
		return pkgerrors.Newf(pkgerrors.CodeValidation, "price must be at most %s", maxPrice.StringFixed(2))
	}
	return nil
}

func validateAvailability(value enums.Availability) error {
	if !value.IsValid() {
		return pkgerrors.Newf(pkgerrors.CodeValidation, "availability must be one of %v", enums.Availabilities())
	}
	return nil
}

func validateStockCount(count int) error {
	if count < 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "stock_count must be zero or greater")
	}
	return nil
}

func wrapTxError(err error, msg string) error {
	if pkgerrors.As(err) != nil {
		return err
	}
	return pkgerrors.Wrap(pkgerrors.CodeDependency, err, msg)
}

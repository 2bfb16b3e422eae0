package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/angelmondragon/bookstore-admin/internal/users"
	"github.com/angelmondragon/bookstore-admin/pkg/config"
	"github.com/angelmondragon/bookstore-admin/pkg/db/models"
	"github.com/angelmondragon/bookstore-admin/pkg/enums"
	"github.com/angelmondragon/bookstore-admin/pkg/logger"
	"github.com/angelmondragon/bookstore-admin/pkg/security"
)

type demoAccount struct {
	username string
	password string
	role     enums.Role
}

type demoBook struct {
	name         string
	price        string
	availability enums.Availability
	stock        int
	categories   []string
}

var demoAccounts = []demoAccount{
	{username: "user", password: "user", role: enums.RoleUser},
	{username: "admin", password: "admin", role: enums.RoleAdmin},
}

var demoCategories = []string{"Fiction", "Science", "History", "Children", "Cookbooks"}

var demoBooks = []demoBook{
	{name: "The Silent Orchard", price: "14.99", availability: enums.AvailabilityAvailable, stock: 12, categories: []string{"Fiction"}},
	{name: "A Short History of Clocks", price: "22.5", availability: enums.AvailabilityAvailable, stock: 3, categories: []string{"History", "Science"}},
	{name: "Stars for Small Hands", price: "9", availability: enums.AvailabilityComing, categories: []string{"Children", "Science"}},
	{name: "Bread Without Haste", price: "31.25", availability: enums.AvailabilityDiscontinued, categories: []string{"Cookbooks"}},
	{name: "Maps of the Inner Sea", price: "18.75", availability: enums.AvailabilityAvailable, stock: 7},
}

type seeder struct {
	db       *gorm.DB
	users    *users.Repository
	password config.PasswordConfig
	logg     *logger.Logger
}

// run inserts whatever part of the demo data is missing; existing rows are left alone.
func (s *seeder) run(ctx context.Context) error {
	if err := s.seedAccounts(ctx); err != nil {
		return err
	}
	byName, err := s.seedCategories(ctx)
	if err != nil {
		return err
	}
	return s.seedBooks(ctx, byName)
}

func (s *seeder) seedAccounts(ctx context.Context) error {
	for _, account := range demoAccounts {
		_, err := s.users.FindByUsername(ctx, account.username)
		if err == nil {
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("lookup user %s: %w", account.username, err)
		}

		hash, err := security.HashPassword(account.password, s.password)
		if err != nil {
			return fmt.Errorf("hash password for %s: %w", account.username, err)
		}
		if _, err := s.users.Create(ctx, users.CreateUserDTO{
			Username:     account.username,
			PasswordHash: hash,
			Role:         account.role,
		}); err != nil {
			return fmt.Errorf("create user %s: %w", account.username, err)
		}
		s.logg.Info(s.logg.WithFields(ctx, map[string]any{"username": account.username, "role": account.role}), "seeded user")
	}
	return nil
}

func (s *seeder) seedCategories(ctx context.Context) (map[string]models.Category, error) {
	out := make(map[string]models.Category, len(demoCategories))
	for _, name := range demoCategories {
		category := models.Category{Name: name}
		if err := s.db.WithContext(ctx).Where("name = ?", name).FirstOrCreate(&category).Error; err != nil {
			return nil, fmt.Errorf("seed category %s: %w", name, err)
		}
		out[name] = category
	}
	return out, nil
}

func (s *seeder) seedBooks(ctx context.Context, categories map[string]models.Category) error {
	for _, book := range demoBooks {
		var count int64
		if err := s.db.WithContext(ctx).Model(&models.Product{}).Where("product_name = ?", book.name).Count(&count).Error; err != nil {
			return fmt.Errorf("lookup book %s: %w", book.name, err)
		}
		if count > 0 {
			continue
		}

		price, err := decimal.NewFromString(book.price)
		if err != nil {
			return fmt.Errorf("parse price of %s: %w", book.name, err)
		}
		product := models.Product{
			ProductName:  book.name,
			Price:        price.Round(2),
			Availability: book.availability,
			StockCount:   book.stock,
		}
		for _, name := range book.categories {
			category, ok := categories[name]
			if !ok {
				return fmt.Errorf("book %s references unknown category %s", book.name, name)
			}
			product.Categories = append(product.Categories, category)
		}

		if err := s.db.WithContext(ctx).Omit("Categories.*").Create(&product).Error; err != nil {
			return fmt.Errorf("create book %s: %w", book.name, err)
		}
		s.logg.Debug(s.logg.WithField(ctx, "product_id", product.ID.String()), "seeded book")
	}
	return nil
}

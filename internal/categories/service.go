package categories

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/angelmondragon/bookstore-admin/pkg/db"
	"github.com/angelmondragon/bookstore-admin/pkg/db/models"
	pkgerrors "github.com/angelmondragon/bookstore-admin/pkg/errors"
	"github.com/angelmondragon/bookstore-admin/pkg/logger"
	"github.com/angelmondragon/bookstore-admin/pkg/redis"
	"gorm.io/gorm"
)

const (
	maxCategoryNameLength = 128
	nameConstraint        = "categories_name_key"
	sqliteNameColumn      = "categories.name"
	cacheKeyList          = "list"
	cacheKeyGeneration    = "generation"
)

// CategoryDTO is the category payload returned to clients.
type CategoryDTO struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Service manages categories. Reads go through a Redis JSON cache keyed by a
// generation counter that every write bumps, so a list read before a write can
// never be served after it.
type Service interface {
	List(ctx context.Context) ([]CategoryDTO, error)
	Create(ctx context.Context, name string) (*CategoryDTO, error)
	Rename(ctx context.Context, id int64, name string) (*CategoryDTO, error)
	Delete(ctx context.Context, id int64) error
}

type categoryRepository interface {
	List(ctx context.Context) ([]models.Category, error)
	FindByID(ctx context.Context, id int64) (*models.Category, error)
	Create(ctx context.Context, category *models.Category) error
	Rename(ctx context.Context, id int64, name string) error
	Delete(ctx context.Context, id int64) error
}

type service struct {
	repo     categoryRepository
	cache    redis.JSONCache
	cacheTTL time.Duration
	logg     *logger.Logger
}

func NewService(repo categoryRepository, cache redis.JSONCache, cacheTTL time.Duration, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("category repository required")
	}
	if cache == nil {
		return nil, fmt.Errorf("category cache required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{repo: repo, cache: cache, cacheTTL: cacheTTL, logg: logg}, nil
}

func (s *service) generationKey() string {
	return s.cache.CacheKey("categories", cacheKeyGeneration)
}

func (s *service) listKey(gen int64) string {
	return s.cache.CacheKey("categories", cacheKeyList, strconv.FormatInt(gen, 10))
}

// List serves from cache when possible. Cache failures fall back to the database.
func (s *service) List(ctx context.Context) ([]CategoryDTO, error) {
	gen, err := s.cache.Generation(ctx, s.generationKey())
	cacheable := err == nil
	if err != nil {
		s.logg.WarnErr(ctx, "category cache generation read failed", err)
	}

	if cacheable {
		var cached []CategoryDTO
		hit, err := s.cache.GetJSON(ctx, s.listKey(gen), &cached)
		if err != nil {
			s.logg.WarnErr(ctx, "category cache read failed", err)
		}
		if hit {
			return cached, nil
		}
	}

	rows, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list categories")
	}
	out := make([]CategoryDTO, 0, len(rows))
	for _, row := range rows {
		out = append(out, toDTO(row))
	}

	// A write during the read bumped the generation; this entry is then
	// stored under a key no reader asks for and simply expires.
	if cacheable {
		if err := s.cache.SetJSON(ctx, s.listKey(gen), out, s.cacheTTL); err != nil {
			s.logg.WarnErr(ctx, "category cache write failed", err)
		}
	}
	return out, nil
}

func (s *service) Create(ctx context.Context, name string) (*CategoryDTO, error) {
	normalized, err := normalizeName(name)
	if err != nil {
		return nil, err
	}
	category := &models.Category{Name: normalized}
	if err := s.repo.Create(ctx, category); err != nil {
		return nil, mapWriteError(err, "create category")
	}
	s.invalidate(ctx)
	dto := toDTO(*category)
	return &dto, nil
}

func (s *service) Rename(ctx context.Context, id int64, name string) (*CategoryDTO, error) {
	normalized, err := normalizeName(name)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Rename(ctx, id, normalized); err != nil {
		return nil, mapWriteError(err, "rename category")
	}
	s.invalidate(ctx)

	category, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, mapWriteError(err, "load category")
	}
	dto := toDTO(*category)
	return &dto, nil
}

func (s *service) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return mapWriteError(err, "delete category")
	}
	s.invalidate(ctx)
	return nil
}

func (s *service) invalidate(ctx context.Context) {
	gen, err := s.cache.Incr(ctx, s.generationKey())
	if err != nil {
		s.logg.Error(ctx, "category cache invalidation failed", err)
		return
	}
	if err := s.cache.Del(ctx, s.listKey(gen-1)); err != nil {
		s.logg.WarnErr(ctx, "category cache cleanup failed", err)
	}
}

func toDTO(c models.Category) CategoryDTO {
	return CategoryDTO{ID: c.ID, Name: c.Name}
}

func normalizeName(name string) (string, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "name is required")
	}
	if utf8.RuneCountInString(trimmed) > maxCategoryNameLength {
		return "", pkgerrors.Newf(pkgerrors.CodeValidation, "name must be at most %d characters", maxCategoryNameLength)
	}
	return trimmed, nil
}

func mapWriteError(err error, msg string) error {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return pkgerrors.NotFound("category")
	case db.IsUniqueViolation(err, nameConstraint), db.IsUniqueViolation(err, sqliteNameColumn):
		return pkgerrors.New(pkgerrors.CodeConflict, "category name already exists")
	default:
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, msg)
	}
}

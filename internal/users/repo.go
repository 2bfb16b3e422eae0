package users

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/angelmondragon/bookstore-admin/internal/repo"
	"github.com/angelmondragon/bookstore-admin/pkg/db/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository stores the admin console accounts.
type Repository struct {
	repo.Base
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{Base: repo.NewBase(db)}
}

// Create inserts a new account. The username is stored normalized and the
// role defaults to user.
func (r *Repository) Create(ctx context.Context, dto CreateUserDTO) (*models.User, error) {
	user := dto.ToModel()
	if user.Username == "" {
		return nil, fmt.Errorf("username is required")
	}
	if !user.Role.IsValid() {
		return nil, fmt.Errorf("invalid role %q", user.Role)
	}
	if err := r.DB(ctx).Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// FindByUsername matches case-insensitively; misses return gorm.ErrRecordNotFound.
func (r *Repository) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	return r.findOne(ctx, "username = ?", NormalizeUsername(username))
}

func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	return r.findOne(ctx, "id = ?", id)
}

func (r *Repository) UpdateLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error {
	return r.setColumn(ctx, id, "last_login_at", at)
}

// UpdatePasswordHash stores a re-computed hash, e.g. after argon2 parameters change.
func (r *Repository) UpdatePasswordHash(ctx context.Context, id uuid.UUID, hash string) error {
	return r.setColumn(ctx, id, "password_hash", hash)
}

func (r *Repository) findOne(ctx context.Context, query string, arg any) (*models.User, error) {
	var user models.User
	if err := r.DB(ctx).Where(query, arg).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// setColumn skips hooks and updated_at; these are bookkeeping writes.
func (r *Repository) setColumn(ctx context.Context, id uuid.UUID, column string, value any) error {
	return repo.RequireAffected(r.DB(ctx).Model(&models.User{}).Where("id = ?", id).UpdateColumn(column, value))
}

// NormalizeUsername is the canonical stored form of a username.
func NormalizeUsername(username string) string {
	return strings.ToLower(strings.TrimSpace(username))
}

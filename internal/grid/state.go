package grid

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	redisclient "github.com/angelmondragon/bookstore-admin/pkg/redis"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// StateStore keeps the per-session grid state between requests: the last
// viewport width and the selected product.
type StateStore interface {
	SaveWidth(ctx context.Context, accessID string, width int) error
	Width(ctx context.Context, accessID string) (int, bool, error)
	SaveSelection(ctx context.Context, accessID string, productID uuid.UUID) error
	Selection(ctx context.Context, accessID string) (uuid.UUID, bool, error)
	ClearSelection(ctx context.Context, accessID string) error
}

type stateBackend interface {
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	Del(ctx context.Context, keys ...string) error
	GridViewportKey(accessID string) string
	GridSelectionKey(accessID string) string
}

// RedisState stores grid state under the session namespace with the session TTL.
type RedisState struct {
	backend stateBackend
	ttl     time.Duration
}

func NewRedisState(client *redisclient.Client, ttl time.Duration) (*RedisState, error) {
	if client == nil {
		return nil, fmt.Errorf("redis client required")
	}
	if ttl <= 0 {
		return nil, fmt.Errorf("grid state ttl must be positive")
	}
	return &RedisState{backend: client, ttl: ttl}, nil
}

func (s *RedisState) SaveWidth(ctx context.Context, accessID string, width int) error {
	if err := requireAccessID(accessID); err != nil {
		return err
	}
	return s.backend.Set(ctx, s.backend.GridViewportKey(accessID), strconv.Itoa(width), s.ttl)
}

func (s *RedisState) Width(ctx context.Context, accessID string) (int, bool, error) {
	if err := requireAccessID(accessID); err != nil {
		return 0, false, err
	}
	raw, err := s.backend.Get(ctx, s.backend.GridViewportKey(accessID))
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, false, nil
		}
		return 0, false, err
	}
	width, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false, fmt.Errorf("stored viewport width %q: %w", raw, err)
	}
	return width, true, nil
}

func (s *RedisState) SaveSelection(ctx context.Context, accessID string, productID uuid.UUID) error {
	if err := requireAccessID(accessID); err != nil {
		return err
	}
	return s.backend.Set(ctx, s.backend.GridSelectionKey(accessID), productID.String(), s.ttl)
}

func (s *RedisState) Selection(ctx context.Context, accessID string) (uuid.UUID, bool, error) {
	if err := requireAccessID(accessID); err != nil {
		return uuid.Nil, false, err
	}
	raw, err := s.backend.Get(ctx, s.backend.GridSelectionKey(accessID))
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return uuid.Nil, false, nil
		}
		return uuid.Nil, false, err
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, false, fmt.Errorf("stored selection %q: %w", raw, err)
	}
	return id, true, nil
}

func (s *RedisState) ClearSelection(ctx context.Context, accessID string) error {
	if err := requireAccessID(accessID); err != nil {
		return err
	}
	return s.backend.Del(ctx, s.backend.GridSelectionKey(accessID))
}

func requireAccessID(accessID string) error {
	if strings.TrimSpace(accessID) == "" {
		return fmt.Errorf("access id is required")
	}
	return nil
}

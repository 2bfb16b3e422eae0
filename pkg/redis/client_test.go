package redis

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/angelmondragon/bookstore-admin/pkg/config"
	"github.com/redis/go-redis/v9"
)

func TestFixedWindowAllow(t *testing.T) {
	ctx := context.Background()
	mock := newMockCmdable()
	client := &Client{store: mock}

	allowed, count, err := client.FixedWindowAllow(ctx, "test-scope", 2, time.Second)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !allowed {
		t.Fatalf("expected allowed on first request")
	}
	if count != 1 {
		t.Fatalf("expected counter 1 got %d", count)
	}
	if len(mock.ttls) != 1 {
		t.Fatalf("expected ttl applied on first increment")
	}

	allowed, count, err = client.FixedWindowAllow(ctx, "test-scope", 2, time.Second)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !allowed || count != 2 {
		t.Fatalf("unexpected second call state allowed=%v count=%d", allowed, count)
	}
	if len(mock.ttls) != 1 || mock.ttls["bookstore:rate_limit:test-scope"] != time.Second {
		t.Fatalf("ttl should be applied once, got %v", mock.ttls)
	}

	allowed, _, err = client.FixedWindowAllow(ctx, "test-scope", 2, time.Second)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if allowed {
		t.Fatalf("expected limit reached")
	}
}

func TestIncrWithTTLRepairsMissingExpiry(t *testing.T) {
	ctx := context.Background()
	mock := newMockCmdable()
	client := &Client{store: mock}

	// a counter that lost its expiry, e.g. after a crash between INCR and EXPIRE
	mock.incr["stuck"] = 7
	count, err := client.IncrWithTTL(ctx, "stuck", time.Minute)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if count != 8 || mock.ttls["stuck"] != time.Minute {
		t.Fatalf("expected ttl repaired, count=%d ttls=%v", count, mock.ttls)
	}
}

func TestGeneration(t *testing.T) {
	ctx := context.Background()
	mock := newMockCmdable()
	client := &Client{store: mock}

	gen, err := client.Generation(ctx, "gen")
	if err != nil || gen != 0 {
		t.Fatalf("expected zero generation for missing key, got %d err=%v", gen, err)
	}
	if _, err := client.Incr(ctx, "gen"); err != nil {
		t.Fatalf("incr: %v", err)
	}
	if _, err := client.Incr(ctx, "gen"); err != nil {
		t.Fatalf("incr: %v", err)
	}
	if gen, err = client.Generation(ctx, "gen"); err != nil || gen != 2 {
		t.Fatalf("expected generation 2, got %d err=%v", gen, err)
	}

	mock.data["bad"] = "two"
	if _, err := client.Generation(ctx, "bad"); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestJSONRoundTripAndMiss(t *testing.T) {
	ctx := context.Background()
	mock := newMockCmdable()
	client := &Client{store: mock}

	type cached struct {
		ID   int64  `json:"id"`
		Name string `json:"name"`
	}

	key := client.CacheKey("categories", "all")
	var out []cached
	found, err := client.GetJSON(ctx, key, &out)
	if err != nil {
		t.Fatalf("unexpected error on miss: %v", err)
	}
	if found {
		t.Fatalf("expected cache miss")
	}

	in := []cached{{ID: 1, Name: "Romance"}, {ID: 2, Name: "Sci-fi"}}
	if err := client.SetJSON(ctx, key, in, time.Minute); err != nil {
		t.Fatalf("set json: %v", err)
	}
	found, err = client.GetJSON(ctx, key, &out)
	if err != nil || !found {
		t.Fatalf("expected hit, found=%v err=%v", found, err)
	}
	if len(out) != 2 || out[1].Name != "Sci-fi" {
		t.Fatalf("unexpected cached value %+v", out)
	}

	mock.data[key] = "{not json"
	if _, err := client.GetJSON(ctx, key, &out); err == nil {
		t.Fatalf("expected decode error")
	}
}

func TestKeyBuilders(t *testing.T) {
	client := &Client{}
	if got := client.IdempotencyKey("scope", "id"); got != "bookstore:idempotency:scope:id" {
		t.Fatalf("unexpected idempotency key %s", got)
	}
	if got := client.RateLimitKey("scope"); got != "bookstore:rate_limit:scope" {
		t.Fatalf("unexpected rate limit key %s", got)
	}
	if got := client.AccessSessionKey("abc"); got != "bookstore:session:access:abc" {
		t.Fatalf("unexpected session key %s", got)
	}
	if got := client.GridViewportKey("abc"); got != "bookstore:grid:abc:viewport" {
		t.Fatalf("unexpected viewport key %s", got)
	}
	if got := client.GridSelectionKey("abc"); got != "bookstore:grid:abc:selection" {
		t.Fatalf("unexpected selection key %s", got)
	}
	if got := client.CacheKey("categories", "", "all"); got != "bookstore:cache:categories:all" {
		t.Fatalf("cache key should skip empty parts, got %s", got)
	}
	if keys := client.GridStateKeys("abc"); len(keys) != 2 {
		t.Fatalf("expected two grid keys, got %v", keys)
	}
}

func TestUninitializedClientErrors(t *testing.T) {
	client := &Client{}
	if err := client.Ping(context.Background()); !errors.Is(err, ErrNotInitialized) {
		t.Fatalf("expected ErrNotInitialized from nil store, got %v", err)
	}
	if err := client.Close(); err != nil {
		t.Fatalf("close on nil raw should be a no-op, got %v", err)
	}
}

func TestOptionsFromConfig(t *testing.T) {
	opts, err := optionsFromConfig(config.RedisConfig{URL: "redis://:pw@cache:6380/3", DB: 1, PoolSize: 7, DialTimeout: time.Second})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if opts.Addr != "cache:6380" || opts.DB != 3 || opts.Password != "pw" {
		t.Fatalf("url values should win, got addr=%s db=%d", opts.Addr, opts.DB)
	}
	if opts.PoolSize != 7 || opts.DialTimeout != time.Second {
		t.Fatalf("expected config fallbacks, got pool=%d dial=%v", opts.PoolSize, opts.DialTimeout)
	}

	opts, err = optionsFromConfig(config.RedisConfig{Address: "localhost:6379", DB: 2})
	if err != nil || opts.Addr != "localhost:6379" || opts.DB != 2 {
		t.Fatalf("unexpected address options %+v err=%v", opts, err)
	}

	if _, err := optionsFromConfig(config.RedisConfig{}); err == nil {
		t.Fatal("expected error without url or address")
	}
}

type mockCmdable struct {
	data map[string]string
	incr map[string]int64
	ttls map[string]time.Duration
}

func newMockCmdable() *mockCmdable {
	return &mockCmdable{
		data: make(map[string]string),
		incr: make(map[string]int64),
		ttls: make(map[string]time.Duration),
	}
}

func (m *mockCmdable) Ping(context.Context) *redis.StatusCmd {
	return redis.NewStatusResult("PONG", nil)
}

func (m *mockCmdable) Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd {
	m.data[key] = fmt.Sprint(value)
	return redis.NewStatusResult("OK", nil)
}

func (m *mockCmdable) Get(ctx context.Context, key string) *redis.StringCmd {
	v, ok := m.data[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(v, nil)
}

func (m *mockCmdable) SetNX(ctx context.Context, key string, value any, expiration time.Duration) *redis.BoolCmd {
	if _, exists := m.data[key]; exists {
		return redis.NewBoolResult(false, nil)
	}
	m.data[key] = fmt.Sprint(value)
	return redis.NewBoolResult(true, nil)
}

func (m *mockCmdable) Incr(ctx context.Context, key string) *redis.IntCmd {
	m.incr[key]++
	m.data[key] = fmt.Sprint(m.incr[key])
	return redis.NewIntResult(m.incr[key], nil)
}

func (m *mockCmdable) ExpireNX(ctx context.Context, key string, expiration time.Duration) *redis.BoolCmd {
	if _, ok := m.ttls[key]; ok {
		return redis.NewBoolResult(false, nil)
	}
	m.ttls[key] = expiration
	return redis.NewBoolResult(true, nil)
}

func (m *mockCmdable) Del(ctx context.Context, keys ...string) *redis.IntCmd {
	for _, key := range keys {
		delete(m.data, key)
	}
	return redis.NewIntResult(int64(len(keys)), nil)
}

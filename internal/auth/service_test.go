package auth

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/angelmondragon/bookstore-admin/internal/menu"
	pkgAuth "github.com/angelmondragon/bookstore-admin/pkg/auth"
	"github.com/angelmondragon/bookstore-admin/pkg/config"
	"github.com/angelmondragon/bookstore-admin/pkg/db/models"
	"github.com/angelmondragon/bookstore-admin/pkg/enums"
	pkgerrors "github.com/angelmondragon/bookstore-admin/pkg/errors"
	"github.com/angelmondragon/bookstore-admin/pkg/logger"
	"github.com/angelmondragon/bookstore-admin/pkg/security"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var testPasswordCfg = config.PasswordConfig{
	ArgonMemoryKB:    8192,
	ArgonTime:        1,
	ArgonParallelism: 1,
	ArgonSaltLen:     16,
	ArgonKeyLen:      32,
}

var testJWTCfg = config.JWTConfig{
	Secret:            "secret",
	Issuer:            "bookstore",
	ExpirationMinutes: 30,
}

type stubUserRepo struct {
	users     map[string]*models.User
	lastLogin map[uuid.UUID]time.Time
	rehashed  map[uuid.UUID]string
	lookupErr error
}

func newStubUserRepo(users ...*models.User) *stubUserRepo {
	repo := &stubUserRepo{
		users:     map[string]*models.User{},
		lastLogin: map[uuid.UUID]time.Time{},
		rehashed:  map[uuid.UUID]string{},
	}
	for _, u := range users {
		repo.users[u.Username] = u
	}
	return repo
}

func (s *stubUserRepo) FindByUsername(_ context.Context, username string) (*models.User, error) {
	if s.lookupErr != nil {
		return nil, s.lookupErr
	}
	user, ok := s.users[username]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	clone := *user
	return &clone, nil
}

func (s *stubUserRepo) UpdateLastLogin(_ context.Context, id uuid.UUID, at time.Time) error {
	s.lastLogin[id] = at
	return nil
}

func (s *stubUserRepo) UpdatePasswordHash(_ context.Context, id uuid.UUID, hash string) error {
	s.rehashed[id] = hash
	return nil
}

type stubSessions struct {
	generated []string
}

func (s *stubSessions) Generate(_ context.Context, accessID string) (string, error) {
	s.generated = append(s.generated, accessID)
	return "refresh-" + accessID, nil
}

func mustHashPassword(t *testing.T, password string, cfg config.PasswordConfig) string {
	t.Helper()
	hash, err := security.HashPassword(password, cfg)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	return hash
}

func demoUser(t *testing.T, username string, role enums.Role) *models.User {
	return &models.User{
		ID:           uuid.New(),
		Username:     username,
		PasswordHash: mustHashPassword(t, username, testPasswordCfg),
		Role:         role,
		IsActive:     true,
	}
}

func buildTestService(t *testing.T, repo *stubUserRepo, sessions *stubSessions, passwordCfg config.PasswordConfig) Service {
	t.Helper()
	svc, err := NewService(ServiceParams{
		UserRepo:       repo,
		SessionManager: sessions,
		JWTConfig:      testJWTCfg,
		PasswordConfig: passwordCfg,
		Logger:         logger.New(logger.Options{ServiceName: "test", Output: io.Discard}),
	})
	if err != nil {
		t.Fatalf("build service: %v", err)
	}
	return svc
}

func TestLoginMenuDependsOnRole(t *testing.T) {
	repo := newStubUserRepo(demoUser(t, "user", enums.RoleUser), demoUser(t, "admin", enums.RoleAdmin))
	svc := buildTestService(t, repo, &stubSessions{}, testPasswordCfg)

	tests := []struct {
		username string
		admins   int
	}{
		{"user", 0},
		{"admin", 1},
	}
	for _, tt := range tests {
		resp, err := svc.Login(context.Background(), LoginRequest{Username: tt.username, Password: tt.username})
		if err != nil {
			t.Fatalf("login %s: %v", tt.username, err)
		}
		if got := menu.CountLabel(resp.Menu, "admin"); got != tt.admins {
			t.Fatalf("%s: expected %d admin entries, got %d", tt.username, tt.admins, got)
		}
	}
}

func TestLoginIssuesTokensAndRecordsLogin(t *testing.T) {
	admin := demoUser(t, "admin", enums.RoleAdmin)
	repo := newStubUserRepo(admin)
	sessions := &stubSessions{}
	svc := buildTestService(t, repo, sessions, testPasswordCfg)

	resp, err := svc.Login(context.Background(), LoginRequest{Username: "  ADMIN ", Password: "admin"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	claims, err := pkgAuth.ParseAccessToken(testJWTCfg, resp.AccessToken)
	if err != nil {
		t.Fatalf("parse access token: %v", err)
	}
	if claims.Role != enums.RoleAdmin || claims.UserID != admin.ID || claims.Username != "admin" {
		t.Fatalf("unexpected claims %+v", claims)
	}
	if len(sessions.generated) != 1 || sessions.generated[0] != claims.AccessID() {
		t.Fatalf("refresh session should be keyed by the token jti, got %v", sessions.generated)
	}
	if resp.RefreshToken != "refresh-"+claims.AccessID() {
		t.Fatalf("unexpected refresh token %q", resp.RefreshToken)
	}
	if _, ok := repo.lastLogin[admin.ID]; !ok {
		t.Fatal("expected last login recorded")
	}
	if resp.User == nil || resp.User.LastLoginAt == nil {
		t.Fatal("expected user dto with last login")
	}
	if len(repo.rehashed) != 0 {
		t.Fatal("hash with current params should not be rewritten")
	}
}

func TestLoginRejectsBadCredentialsUniformly(t *testing.T) {
	inactive := demoUser(t, "retired", enums.RoleUser)
	inactive.IsActive = false
	repo := newStubUserRepo(demoUser(t, "user", enums.RoleUser), inactive)
	svc := buildTestService(t, repo, &stubSessions{}, testPasswordCfg)

	cases := []LoginRequest{
		{Username: "user", Password: "wrong"},
		{Username: "ghost", Password: "user"},
		{Username: "retired", Password: "retired"},
		{Username: "", Password: "user"},
	}
	for _, req := range cases {
		_, err := svc.Login(context.Background(), req)
		typed := pkgerrors.As(err)
		if typed == nil || typed.Code() != pkgerrors.CodeUnauthorized || typed.Message() != invalidCredentialsMessage {
			t.Fatalf("login %q: expected uniform unauthorized, got %v", req.Username, err)
		}
	}
}

func TestLoginLookupFailureIsInternal(t *testing.T) {
	repo := newStubUserRepo()
	repo.lookupErr = errors.New("connection refused")
	svc := buildTestService(t, repo, &stubSessions{}, testPasswordCfg)

	_, err := svc.Login(context.Background(), LoginRequest{Username: "user", Password: "user"})
	if !pkgerrors.IsCode(err, pkgerrors.CodeInternal) {
		t.Fatalf("expected internal error, got %v", err)
	}
}

func TestLoginRehashesOutdatedHash(t *testing.T) {
	user := demoUser(t, "user", enums.RoleUser)
	repo := newStubUserRepo(user)
	stronger := testPasswordCfg
	stronger.ArgonTime = 2
	svc := buildTestService(t, repo, &stubSessions{}, stronger)

	if _, err := svc.Login(context.Background(), LoginRequest{Username: "user", Password: "user"}); err != nil {
		t.Fatalf("login: %v", err)
	}
	hash, ok := repo.rehashed[user.ID]
	if !ok {
		t.Fatal("expected password rehash")
	}
	if security.NeedsRehash(hash, stronger) {
		t.Fatal("new hash should match current params")
	}
}

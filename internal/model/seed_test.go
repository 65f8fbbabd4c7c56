package model

import (
	"context"
	"testing"

	"kodbank/internal/auth"
	"kodbank/internal/config"
	"kodbank/internal/entity"

	"gorm.io/gorm"
)

type stubRepository struct {
	Repository
	users map[string]*entity.DbUser
}

func newStubRepository() *stubRepository {
	return &stubRepository{users: make(map[string]*entity.DbUser)}
}

func (s *stubRepository) GetUserByUsername(ctx context.Context, username string) (*entity.DbUser, error) {
	if user, ok := s.users[username]; ok {
		return user, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubRepository) CreateUser(ctx context.Context, user *entity.DbUser) error {
	if _, ok := s.users[user.Username]; ok {
		return gorm.ErrDuplicatedKey
	}
	s.users[user.Username] = user
	return nil
}

func TestSeedDefaultAdminCreatesAccount(t *testing.T) {
	repo := newStubRepository()
	cfg := config.Config{
		AdminUsername:  "admin",
		AdminEmail:     "Admin@Kodbank.local",
		AdminPassword:  "changeme123",
		InitialBalance: 100000,
	}

	if err := SeedDefaultAdmin(context.Background(), repo, cfg); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	admin, ok := repo.users["admin"]
	if !ok {
		t.Fatal("expected admin account to be created")
	}
	if admin.Role != entity.UserRoleAdmin {
		t.Fatalf("expected role admin, got %s", admin.Role)
	}
	if admin.Email != "admin@kodbank.local" {
		t.Fatalf("expected lowercased email, got %s", admin.Email)
	}
	if admin.Balance != 100000 {
		t.Fatalf("expected seeded balance, got %v", admin.Balance)
	}
	if err := auth.VerifyPassword(admin.PasswordHash, "changeme123"); err != nil {
		t.Fatalf("expected stored hash to verify: %v", err)
	}
}

func TestSeedDefaultAdminSkipsWhenUnconfigured(t *testing.T) {
	repo := newStubRepository()

	if err := SeedDefaultAdmin(context.Background(), repo, config.Config{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(repo.users) != 0 {
		t.Fatal("expected no accounts without admin config")
	}
}

func TestSeedDefaultAdminIsIdempotent(t *testing.T) {
	repo := newStubRepository()
	cfg := config.Config{AdminUsername: "admin", AdminPassword: "changeme123", InitialBalance: 100000}

	for i := 0; i < 2; i++ {
		if err := SeedDefaultAdmin(context.Background(), repo, cfg); err != nil {
			t.Fatalf("run %d: unexpected error: %v", i+1, err)
		}
	}
	if len(repo.users) != 1 {
		t.Fatalf("expected a single admin account, got %d", len(repo.users))
	}
}

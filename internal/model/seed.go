package model

import (
	"context"
	"errors"
	"strings"

	"kodbank/internal/auth"
	"kodbank/internal/config"
	"kodbank/internal/entity"

	"gorm.io/gorm"
)

// SeedDefaultAdmin ensures the configured bootstrap admin account exists.
// It is a no-op unless both ADMIN_USERNAME and ADMIN_PASSWORD are set.
func SeedDefaultAdmin(ctx context.Context, repo Repository, cfg config.Config) error {
	if repo == nil {
		return nil
	}

	username := strings.TrimSpace(cfg.AdminUsername)
	if username == "" || strings.TrimSpace(cfg.AdminPassword) == "" {
		return nil
	}

	_, err := repo.GetUserByUsername(ctx, username)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		hash, hashErr := auth.HashPassword(cfg.AdminPassword)
		if hashErr != nil {
			return hashErr
		}
		admin := &entity.DbUser{
			Username:     username,
			Email:        strings.ToLower(strings.TrimSpace(cfg.AdminEmail)),
			PasswordHash: hash,
			Balance:      cfg.InitialBalance,
			Role:         entity.UserRoleAdmin,
		}
		if createErr := repo.CreateUser(ctx, admin); createErr != nil {
			// 另一个实例可能抢先完成了引导
			if errors.Is(createErr, gorm.ErrDuplicatedKey) {
				return nil
			}
			return createErr
		}
		return nil
	default:
		return err
	}
}

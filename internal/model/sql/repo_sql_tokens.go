package sql

import (
	"context"
	"fmt"
	"strings"

	"kodbank/internal/entity"
)

// CreateUserToken persists a session token row.
func (r *GormRepository) CreateUserToken(ctx context.Context, token *entity.DbUserToken) error {
	if r == nil || r.db == nil {
		return fmt.Errorf("repository not initialised")
	}
	if token == nil {
		return fmt.Errorf("token is nil")
	}
	return r.db.WithContext(ctx).Create(token).Error
}

// GetUserTokenByToken loads a session row by the exact token string.
func (r *GormRepository) GetUserTokenByToken(ctx context.Context, token string) (*entity.DbUserToken, error) {
	if r == nil || r.db == nil {
		return nil, fmt.Errorf("repository not initialised")
	}
	if strings.TrimSpace(token) == "" {
		return nil, fmt.Errorf("token is empty")
	}
	var record entity.DbUserToken
	if err := r.db.WithContext(ctx).Where("token = ?", token).First(&record).Error; err != nil {
		return nil, err
	}
	return &record, nil
}

// DeleteUserTokenByToken removes the session row matching the token
// string. Deleting a nonexistent row is not an error, which keeps
// logout idempotent.
func (r *GormRepository) DeleteUserTokenByToken(ctx context.Context, token string) error {
	if r == nil || r.db == nil {
		return fmt.Errorf("repository not initialised")
	}
	if strings.TrimSpace(token) == "" {
		return nil
	}
	return r.db.WithContext(ctx).Where("token = ?", token).Delete(&entity.DbUserToken{}).Error
}

// DeleteUserTokenByTID removes a session row by its id. Used by the
// validator's lazy cleanup of expired rows.
func (r *GormRepository) DeleteUserTokenByTID(ctx context.Context, tid string) error {
	if r == nil || r.db == nil {
		return fmt.Errorf("repository not initialised")
	}
	if strings.TrimSpace(tid) == "" {
		return fmt.Errorf("tid is empty")
	}
	return r.db.WithContext(ctx).Where("tid = ?", tid).Delete(&entity.DbUserToken{}).Error
}

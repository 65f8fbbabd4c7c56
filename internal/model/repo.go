package model

import (
	"context"

	"kodbank/internal/entity"
)

// Repository 定义数据库操作接口
type Repository interface {
	// 用户账户
	CreateUser(ctx context.Context, user *entity.DbUser) error
	GetUserByUsername(ctx context.Context, username string) (*entity.DbUser, error)
	GetUserByUID(ctx context.Context, uid string) (*entity.DbUser, error)
	UserExists(ctx context.Context, username, email string) (bool, error)

	// 会话令牌
	CreateUserToken(ctx context.Context, token *entity.DbUserToken) error
	GetUserTokenByToken(ctx context.Context, token string) (*entity.DbUserToken, error)
	DeleteUserTokenByToken(ctx context.Context, token string) error
	DeleteUserTokenByTID(ctx context.Context, tid string) error
}

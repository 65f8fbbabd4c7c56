package api

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const (
	currentUserContextKey = "current-user"
)

// RequestUser 存储请求上下文中的认证用户信息
type RequestUser struct {
	UID      string
	Username string
	Role     string
}

// AuthMiddleware 会话认证中间件。JWT 签名保证令牌未被篡改，
// 数据库中的会话行保证令牌未被注销；两者都通过才放行。
func (h *HTTPHandler) AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(sessionCookieName)
		if err != nil || strings.TrimSpace(token) == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, APIError{
				Code:    ErrCodeNoToken,
				Message: "Access denied. No token provided.",
			})
			return
		}

		claims, err := h.authManager.ParseToken(token)
		if err != nil {
			if errors.Is(err, jwt.ErrTokenExpired) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, APIError{
					Code:    ErrCodeSessionExpired,
					Message: "Session expired. Please login again.",
				})
				return
			}
			logrus.WithError(err).Warn("failed to parse session token")
			c.AbortWithStatusJSON(http.StatusUnauthorized, APIError{
				Code:    ErrCodeInvalidToken,
				Message: "Invalid token.",
			})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), repoTimeout)
		defer cancel()

		record, err := h.repo.GetUserTokenByToken(ctx, token)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				// Revoked by logout, or never issued by us.
				c.AbortWithStatusJSON(http.StatusUnauthorized, APIError{
					Code:    ErrCodeSessionExpired,
					Message: "Invalid or expired session.",
				})
				return
			}
			logrus.WithError(err).Error("failed to load session token")
			c.AbortWithStatusJSON(http.StatusInternalServerError, APIError{
				Code:    ErrCodeInternalError,
				Message: "Failed to validate session.",
			})
			return
		}

		if record.Expired(time.Now()) {
			// 惰性清理：过期行只在被撞见时删除
			if err := h.repo.DeleteUserTokenByTID(ctx, record.TID); err != nil {
				logrus.WithError(err).WithField("tid", record.TID).Warn("failed to delete expired session token")
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, APIError{
				Code:    ErrCodeSessionExpired,
				Message: "Session expired. Please login again.",
			})
			return
		}

		c.Set(currentUserContextKey, &RequestUser{
			UID:      claims.UID,
			Username: claims.Username,
			Role:     claims.Role,
		})
		c.Next()
	}
}

// CurrentUser 从上下文获取当前认证用户
func CurrentUser(c *gin.Context) *RequestUser {
	value, exists := c.Get(currentUserContextKey)
	if !exists {
		return nil
	}
	user, ok := value.(*RequestUser)
	if !ok {
		return nil
	}
	return user
}

package api

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"kodbank/internal/auth"
	"kodbank/internal/entity"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Register 创建新账户并发放初始余额
func (h *HTTPHandler) Register(c *gin.Context) {
	var req entity.AuthRegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponseWithDetails(c, http.StatusBadRequest, ErrCodeValidation, "Validation failed", gin.H{"reason": err.Error()})
		return
	}

	username := strings.TrimSpace(req.Username)
	email := strings.ToLower(strings.TrimSpace(req.Email))

	ctx, cancel := context.WithTimeout(c.Request.Context(), repoTimeout)
	defer cancel()

	// Fast-path existence check for a friendly 409. Racing inserts can
	// still slip past it; the unique indexes below are the authority.
	exists, err := h.repo.UserExists(ctx, username, email)
	if err != nil {
		logrus.WithError(err).Error("failed to check user existence during registration")
		InternalError(c, "Failed to create account. Please try again.")
		return
	}
	if exists {
		Conflict(c, "Username or email already exists.")
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		logrus.WithError(err).Error("failed to hash password")
		InternalError(c, "Failed to create account. Please try again.")
		return
	}

	user := &entity.DbUser{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		Balance:      h.cfg.InitialBalance,
		Phone:        strings.TrimSpace(req.Phone),
		Role:         entity.UserRoleCustomer,
	}

	if err := h.repo.CreateUser(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// Lost the pre-check race; the store's conflict signal wins.
			Conflict(c, "Username or email already exists.")
			return
		}
		logrus.WithError(err).WithField("username", username).Error("failed to create user")
		InternalError(c, "Failed to create account. Please try again.")
		return
	}

	c.JSON(http.StatusCreated, entity.AuthResponse{
		Message: "Account created successfully!",
		User:    makeUserSummary(user),
	})
}

// Login 校验凭证，签发 JWT 并持久化会话令牌
func (h *HTTPHandler) Login(c *gin.Context) {
	var req entity.AuthLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Please provide username and password.")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), repoTimeout)
	defer cancel()

	user, err := h.repo.GetUserByUsername(ctx, strings.TrimSpace(req.Username))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Same message as a wrong password so usernames cannot be probed.
			Unauthorized(c, ErrCodeInvalidCredentials, "Invalid username or password.")
			return
		}
		logrus.WithError(err).Error("failed to load user during login")
		InternalError(c, "Login failed. Please try again.")
		return
	}

	if err := auth.VerifyPassword(user.PasswordHash, req.Password); err != nil {
		logrus.WithField("username", user.Username).Warn("password verification failed")
		Unauthorized(c, ErrCodeInvalidCredentials, "Invalid username or password.")
		return
	}

	signed, expiry, err := h.authManager.GenerateToken(user)
	if err != nil {
		logrus.WithError(err).Error("failed to generate token")
		InternalError(c, "Login failed. Please try again.")
		return
	}

	// The session row must exist before the cookie goes out; a signed
	// token without a row would be rejected by the validator anyway.
	record := &entity.DbUserToken{
		Token:  signed,
		UID:    user.UID,
		Expiry: expiry,
	}
	if err := h.repo.CreateUserToken(ctx, record); err != nil {
		logrus.WithError(err).WithField("uid", user.UID).Error("failed to persist session token")
		InternalError(c, "Login failed. Please try again.")
		return
	}

	h.setSessionCookie(c, signed)
	c.JSON(http.StatusOK, entity.AuthResponse{
		Message: "Login successful!",
		User:    makeUserSummary(user),
	})
}

// Logout 撤销当前会话。幂等：没有对应的会话行也返回成功。
func (h *HTTPHandler) Logout(c *gin.Context) {
	token, err := c.Cookie(sessionCookieName)
	if err == nil && strings.TrimSpace(token) != "" {
		ctx, cancel := context.WithTimeout(c.Request.Context(), repoTimeout)
		defer cancel()

		if err := h.repo.DeleteUserTokenByToken(ctx, token); err != nil {
			logrus.WithError(err).Error("failed to revoke session token")
			InternalError(c, "Logout failed.")
			return
		}
	}

	h.clearSessionCookie(c)
	c.JSON(http.StatusOK, gin.H{"message": "Logged out successfully."})
}

// Me 返回当前会话对应的用户摘要
func (h *HTTPHandler) Me(c *gin.Context) {
	user := CurrentUser(c)
	if user == nil {
		Unauthorized(c, ErrCodeNoToken, "Not authenticated.")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), repoTimeout)
	defer cancel()

	dbUser, err := h.repo.GetUserByUID(ctx, user.UID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			Unauthorized(c, ErrCodeSessionExpired, "Session invalid.")
			return
		}
		logrus.WithError(err).WithField("uid", user.UID).Error("failed to load user for session check")
		InternalError(c, "Failed to load session.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": makeUserSummary(dbUser)})
}

func makeUserSummary(user *entity.DbUser) entity.UserSummary {
	if user == nil {
		return entity.UserSummary{}
	}
	return entity.UserSummary{
		UID:      user.UID,
		Username: user.Username,
		Email:    user.Email,
		Balance:  user.Balance,
		Role:     user.Role,
	}
}

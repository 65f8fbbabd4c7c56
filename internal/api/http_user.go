package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"kodbank/internal/entity"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Balance 返回当前用户的账户余额
func (h *HTTPHandler) Balance(c *gin.Context) {
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
			NotFound(c, ErrCodeUserNotFound, "User not found.")
			return
		}
		logrus.WithError(err).WithField("uid", user.UID).Error("failed to load balance")
		InternalError(c, "Failed to fetch balance.")
		return
	}

	c.JSON(http.StatusOK, entity.BalanceResponse{
		Message:  fmt.Sprintf("Your balance is: ₹%s", formatINR(dbUser.Balance)),
		Balance:  dbUser.Balance,
		Username: dbUser.Username,
	})
}

// Profile 返回当前用户的完整资料（不含密码哈希）
func (h *HTTPHandler) Profile(c *gin.Context) {
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
			NotFound(c, ErrCodeUserNotFound, "User not found.")
			return
		}
		logrus.WithError(err).WithField("uid", user.UID).Error("failed to load profile")
		InternalError(c, "Failed to fetch profile.")
		return
	}

	c.JSON(http.StatusOK, entity.ProfileResponse{
		User: entity.UserProfile{
			UID:       dbUser.UID,
			Username:  dbUser.Username,
			Email:     dbUser.Email,
			Phone:     dbUser.Phone,
			Role:      dbUser.Role,
			Balance:   dbUser.Balance,
			CreatedAt: dbUser.CreatedAt,
		},
	})
}

// formatINR renders an amount with Indian digit grouping: the last
// three integer digits form one group, the rest group in pairs, e.g.
// 1234567.5 -> "12,34,567.5".
func formatINR(amount float64) string {
	s := strconv.FormatFloat(amount, 'f', 2, 64)

	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}

	intPart, fracPart, _ := strings.Cut(s, ".")
	fracPart = strings.TrimRight(fracPart, "0")

	grouped := intPart
	if len(intPart) > 3 {
		head := intPart[:len(intPart)-3]
		tail := intPart[len(intPart)-3:]

		var pairs []string
		for len(head) > 2 {
			pairs = append([]string{head[len(head)-2:]}, pairs...)
			head = head[:len(head)-2]
		}
		if head != "" {
			pairs = append([]string{head}, pairs...)
		}
		grouped = strings.Join(append(pairs, tail), ",")
	}

	if fracPart != "" {
		grouped += "." + fracPart
	}
	if neg {
		grouped = "-" + grouped
	}
	return grouped
}

package api

import (
	"net/http"
	"time"

	"kodbank/internal/auth"
	"kodbank/internal/config"
	"kodbank/internal/model"

	"github.com/gin-gonic/gin"
)

// sessionCookieName 会话 Cookie 名称
const sessionCookieName = "token"

// repoTimeout bounds every repository round trip made by a handler.
const repoTimeout = 5 * time.Second

// HTTPHandler HTTP 请求处理器
type HTTPHandler struct {
	cfg         config.Config
	repo        model.Repository
	authManager *auth.Manager
}

// NewHTTPHandler 创建 HTTP 处理器实例
func NewHTTPHandler(cfg config.Config, repo model.Repository) (*HTTPHandler, error) {
	expiry := time.Duration(cfg.JWTExpirationMinutes) * time.Minute
	authManager, err := auth.NewManager(cfg.JWTSecret, cfg.JWTIssuer, expiry)
	if err != nil {
		return nil, err
	}

	return &HTTPHandler{
		cfg:         cfg,
		repo:        repo,
		authManager: authManager,
	}, nil
}

// setSessionCookie writes the signed token as an HTTP-only cookie.
// Secure and SameSite=None are production-only; development keeps Lax so
// a localhost frontend on another port can still send the cookie.
func (h *HTTPHandler) setSessionCookie(c *gin.Context, token string) {
	if h.cfg.IsProduction() {
		c.SetSameSite(http.SameSiteNoneMode)
	} else {
		c.SetSameSite(http.SameSiteLaxMode)
	}
	maxAge := h.cfg.JWTExpirationMinutes * 60
	c.SetCookie(sessionCookieName, token, maxAge, "/", "", h.cfg.IsProduction(), true)
}

// clearSessionCookie instructs the client to discard the session cookie.
func (h *HTTPHandler) clearSessionCookie(c *gin.Context) {
	if h.cfg.IsProduction() {
		c.SetSameSite(http.SameSiteNoneMode)
	} else {
		c.SetSameSite(http.SameSiteLaxMode)
	}
	c.SetCookie(sessionCookieName, "", -1, "/", "", h.cfg.IsProduction(), true)
}

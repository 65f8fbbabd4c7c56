package main

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"kodbank/internal/api"
	"kodbank/internal/config"
	"kodbank/internal/model"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/ulule/limiter/v3"
	mgin "github.com/ulule/limiter/v3/drivers/middleware/gin"
	"github.com/ulule/limiter/v3/drivers/store/memory"
)

func main() {
	// .env 仅用于本地开发，缺失时忽略
	_ = godotenv.Load()

	// 初始化配置
	cfg, err := config.ParseConfig()
	if err != nil {
		logrus.WithError(err).Error("Failed to parse config")
		return
	}

	// 初始化logger
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetLevel(logrus.InfoLevel)

	repo, err := model.InitRepository(&cfg)
	if err != nil {
		logrus.WithError(err).Error("failed to initialise repository")
		return
	}

	if err := model.SeedDefaultAdmin(context.Background(), repo, cfg); err != nil {
		logrus.WithError(err).Warn("failed to seed bootstrap admin account")
	}

	httpHandler, err := api.NewHTTPHandler(cfg, repo)
	if err != nil {
		logrus.WithError(err).Error("failed to initialise http handler")
		return
	}

	// 设置Gin模式
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	// 添加中间件
	r.Use(LoggingMiddleware())
	r.Use(CORSMiddleware())
	r.Use(gin.Recovery())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "timestamp": time.Now().UTC().Format(time.RFC3339)})
	})

	apiGroup := r.Group("/api")

	// 注册/登录/注销共用一个限流窗口；会话检查 /me 不受限
	authGroup := apiGroup.Group("/auth")
	authGroup.GET("/me", httpHandler.AuthMiddleware(), httpHandler.Me)

	authLimited := apiGroup.Group("/auth")
	authLimited.Use(authRateLimiter(cfg))
	authLimited.POST("/register", httpHandler.Register)
	authLimited.POST("/login", httpHandler.Login)
	authLimited.POST("/logout", httpHandler.Logout)

	userGroup := apiGroup.Group("/user")
	userGroup.Use(httpHandler.AuthMiddleware())
	userGroup.GET("/balance", httpHandler.Balance)
	userGroup.GET("/profile", httpHandler.Profile)

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Route not found."})
	})

	serverHost := fmt.Sprintf("0.0.0.0:%s", cfg.HTTPPort)
	logger.WithField("host", serverHost).Info("服务器启动")
	// 创建HTTP服务器
	httpServer := &http.Server{
		Addr:         serverHost,
		Handler:      r,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}
	err = httpServer.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		logger.WithError(err).Error("服务器启动失败")
	}
}

// authRateLimiter 认证接口限流中间件（按客户端 IP 计数）
func authRateLimiter(cfg config.Config) gin.HandlerFunc {
	rate := limiter.Rate{
		Period: cfg.AuthRatePeriod,
		Limit:  cfg.AuthRateLimit,
	}
	instance := limiter.New(memory.NewStore(), rate)
	return mgin.NewMiddleware(instance, mgin.WithLimitReachedHandler(func(c *gin.Context) {
		c.JSON(http.StatusTooManyRequests, api.APIError{
			Code:    api.ErrCodeRateLimited,
			Message: "Too many attempts. Please try again later.",
		})
	}))
}

// CORSMiddleware CORS跨域中间件：放行任意 localhost 端口上的前端
func CORSMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if origin != "" && strings.HasPrefix(origin, "http://localhost") {
			c.Header("Access-Control-Allow-Origin", origin)
			c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
			c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Requested-With")
			c.Header("Access-Control-Allow-Credentials", "true")
		}
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

// LoggingMiddleware 日志记录中间件
func LoggingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		// 处理请求
		c.Next()
		// 记录请求结束
		duration := time.Since(start)
		logrus.WithFields(logrus.Fields{
			"method":    c.Request.Method,
			"path":      c.Request.URL.Path,
			"status":    c.Writer.Status(),
			"duration":  duration.String(),
			"size":      c.Writer.Size(),
			"client_ip": c.ClientIP(),
		}).Info("http_request")
	}
}

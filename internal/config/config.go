package config

import (
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/sirupsen/logrus"
)

type Config struct {
	Env      string `env:"ENV" envDefault:"development"`
	HTTPPort string `env:"HTTP_PORT" envDefault:"5000"`

	DBType     string `env:"DBType" envDefault:"sqlite"`
	DSNURL     string `env:"DSN_URL" envDefault:""`
	DBUser     string `env:"DBUser" envDefault:""`
	DBPassword string `env:"DBPassword" envDefault:""`
	DBAddr     string `env:"DBAddr" envDefault:""`
	DBName     string `env:"DBName" envDefault:"kodbank"`
	DBPath     string `env:"DBPath" envDefault:"datas/kodbank.db"`
	DBPort     string `env:"DBPort" envDefault:"5432"`

	JWTSecret            string `env:"JWT_SECRET" envDefault:"dev-secret-change-me"`
	JWTIssuer            string `env:"JWT_ISSUER" envDefault:"kodbank"`
	JWTExpirationMinutes int    `env:"JWT_EXPIRATION_MINUTES" envDefault:"1440"`

	// 新账户的初始余额（演示用，注册后不会变动）
	InitialBalance float64 `env:"INITIAL_BALANCE" envDefault:"100000"`

	// 可选的引导管理员账户，启动时若不存在则创建
	AdminUsername string `env:"ADMIN_USERNAME" envDefault:""`
	AdminEmail    string `env:"ADMIN_EMAIL" envDefault:"admin@kodbank.local"`
	AdminPassword string `env:"ADMIN_PASSWORD" envDefault:""`

	// 认证接口限流：每个客户端 IP 在窗口期内允许的请求数
	AuthRateLimit  int64         `env:"AUTH_RATE_LIMIT" envDefault:"10"`
	AuthRatePeriod time.Duration `env:"AUTH_RATE_PERIOD" envDefault:"15m"`
}

// IsProduction reports whether the app runs with production cookie policy.
func (c Config) IsProduction() bool {
	return strings.EqualFold(strings.TrimSpace(c.Env), "production")
}

func ParseConfig() (Config, error) {
	var Conf Config
	err := env.Parse(&Conf)
	if err != nil {
		logrus.WithError(err).Error("env.Parse error")
		return Config{}, err
	}
	logrus.Debugf("%#v\n", Conf)
	return Conf, nil
}

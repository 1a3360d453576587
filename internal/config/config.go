package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
	"golang.org/x/crypto/bcrypt"
)

const (
	// DriverPostgres PostgreSQLドライバー
	DriverPostgres = "postgres"
	// DriverMySQL MySQLドライバー
	DriverMySQL = "mysql"
	// DriverSQLite SQLiteドライバー
	DriverSQLite = "sqlite"

	sslModeDisable = "disable"
	sslModeRequire = "require"
)

// Config アプリケーション設定
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Auth     AuthConfig
	Log      LogConfig
}

// ServerConfig サーバー設定
type ServerConfig struct {
	Host         string
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	GinMode      string
}

// DatabaseConfig データベース設定
type DatabaseConfig struct {
	Driver       string
	URL          string // 指定された場合は個別の接続設定より優先
	Host         string
	Port         string
	Username     string
	Password     string
	DBName       string
	SSLMode      string
	AutoMigrate  bool
	MaxOpenConns int
	MaxIdleConns int
}

// AuthConfig 認証設定
type AuthConfig struct {
	JWTSecret   string
	TokenExpiry time.Duration
	BcryptCost  int
}

// LogConfig ログ設定
type LogConfig struct {
	Level  string
	Format string
}

// Addr サーバーの待ち受けアドレス
func (c ServerConfig) Addr() string {
	return c.Host + ":" + c.Port
}

// Load 環境変数から設定をロード
func Load(envFiles ...string) (*Config, error) {
	if err := loadEnvFiles(envFiles...); err != nil {
		return nil, err
	}

	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	cfg := &Config{
		Server: ServerConfig{
			Host:         v.GetString("SERVER_HOST"),
			Port:         v.GetString("SERVER_PORT"),
			ReadTimeout:  time.Duration(v.GetInt("SERVER_READ_TIMEOUT")) * time.Second,
			WriteTimeout: time.Duration(v.GetInt("SERVER_WRITE_TIMEOUT")) * time.Second,
			GinMode:      v.GetString("GIN_MODE"),
		},
		Database: DatabaseConfig{
			Driver:       strings.ToLower(v.GetString("DB_DRIVER")),
			URL:          v.GetString("DATABASE_URL"),
			Host:         v.GetString("DB_HOST"),
			Port:         v.GetString("DB_PORT"),
			Username:     v.GetString("DB_USER"),
			Password:     v.GetString("DB_PASSWORD"),
			DBName:       v.GetString("DB_NAME"),
			SSLMode:      v.GetString("DB_SSL_MODE"),
			AutoMigrate:  v.GetBool("DB_AUTO_MIGRATE"),
			MaxOpenConns: v.GetInt("DB_MAX_OPEN_CONNS"),
			MaxIdleConns: v.GetInt("DB_MAX_IDLE_CONNS"),
		},
		Auth: AuthConfig{
			JWTSecret:   v.GetString("JWT_SECRET"),
			TokenExpiry: time.Duration(v.GetInt("TOKEN_EXPIRY")) * time.Hour,
			BcryptCost:  v.GetInt("BCRYPT_COST"),
		},
		Log: LogConfig{
			Level:  v.GetString("LOG_LEVEL"),
			Format: v.GetString("LOG_FORMAT"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "config validation failed")
	}

	return cfg, nil
}

// loadEnvFiles .env ファイルをロード。既定の ./.env は存在しなければ無視し、明示されたファイルは必須
func loadEnvFiles(envFiles ...string) error {
	err := godotenv.Load(envFiles...)
	if err == nil {
		return nil
	}
	if len(envFiles) == 0 && errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return errors.Wrap(err, "load env file")
}

// setDefaults デフォルト値を設定
func setDefaults(v *viper.Viper) {
	v.SetDefault("SERVER_HOST", "0.0.0.0")
	v.SetDefault("SERVER_PORT", "3000")
	v.SetDefault("SERVER_READ_TIMEOUT", 10)
	v.SetDefault("SERVER_WRITE_TIMEOUT", 10)
	v.SetDefault("GIN_MODE", "release")

	v.SetDefault("DB_DRIVER", DriverPostgres)
	v.SetDefault("DATABASE_URL", "")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "")
	v.SetDefault("DB_NAME", "workshelf")
	v.SetDefault("DB_SSL_MODE", sslModeDisable)
	v.SetDefault("DB_AUTO_MIGRATE", true)
	v.SetDefault("DB_MAX_OPEN_CONNS", 25)
	v.SetDefault("DB_MAX_IDLE_CONNS", 10)

	v.SetDefault("JWT_SECRET", "")
	v.SetDefault("TOKEN_EXPIRY", 24)
	v.SetDefault("BCRYPT_COST", bcrypt.DefaultCost)

	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")
}

// Validate 設定値を検証
func (c *Config) Validate() error {
	switch c.Database.Driver {
	case DriverPostgres, DriverMySQL, DriverSQLite:
	default:
		return fmt.Errorf("unknown DB driver: %q", c.Database.Driver)
	}

	if c.Database.Driver == DriverPostgres && c.Database.URL == "" {
		switch c.Database.SSLMode {
		case sslModeDisable, sslModeRequire:
		default:
			return fmt.Errorf("DB SSL mode is invalid: %q", c.Database.SSLMode)
		}
	}

	if c.Auth.JWTSecret == "" {
		return errors.New("JWT_SECRET is required")
	}
	if c.Auth.TokenExpiry <= 0 {
		return errors.New("TOKEN_EXPIRY must be positive")
	}
	if c.Auth.BcryptCost < bcrypt.MinCost || c.Auth.BcryptCost > bcrypt.MaxCost {
		return fmt.Errorf("BCRYPT_COST must be between %d and %d", bcrypt.MinCost, bcrypt.MaxCost)
	}

	return nil
}

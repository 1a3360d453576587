package config

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/SketchShifter/workshelf_backend/internal/models"
)

// newGormLogger GORMのログをzap経由で出力する
func newGormLogger(l *zap.Logger) logger.Interface {
	level := logger.Warn
	if l.Core().Enabled(zap.DebugLevel) {
		level = logger.Info
	}
	return logger.New(
		zap.NewStdLog(l.Named("gorm")),
		logger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  level,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)
}

// dialector ドライバーに応じたDialectorを返す
func dialector(cfg DatabaseConfig) gorm.Dialector {
	switch cfg.Driver {
	case DriverMySQL:
		dsn := cfg.URL
		if dsn == "" {
			dsn = fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
				cfg.Username, cfg.Password, cfg.Host, cfg.Port, cfg.DBName)
		}
		return mysql.Open(dsn)
	case DriverSQLite:
		dsn := cfg.URL
		if dsn == "" {
			dsn = cfg.DBName
		}
		return sqlite.Open(dsn)
	default:
		dsn := cfg.URL
		if dsn == "" {
			dsn = fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
				cfg.Host, cfg.Username, cfg.Password, cfg.DBName, cfg.Port, cfg.SSLMode)
		}
		return postgres.Open(dsn)
	}
}

// isMemorySQLite インメモリSQLiteかどうか。接続ごとに別DBになるため接続数を1に固定する
func isMemorySQLite(cfg DatabaseConfig) bool {
	if cfg.Driver != DriverSQLite {
		return false
	}
	dsn := cfg.URL
	if dsn == "" {
		dsn = cfg.DBName
	}
	return dsn == ":memory:" || strings.Contains(dsn, "mode=memory")
}

// InitDB データベース接続を初期化
func InitDB(cfg *Config, l *zap.Logger) (*gorm.DB, error) {
	l.Info("connecting to database",
		zap.String("driver", cfg.Database.Driver),
		zap.String("host", cfg.Database.Host),
		zap.String("db", cfg.Database.DBName),
	)

	db, err := gorm.Open(dialector(cfg.Database), &gorm.Config{
		Logger:         newGormLogger(l),
		TranslateError: true,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to connect database")
	}

	// 接続プールの設定
	sqlDB, err := db.DB()
	if err != nil {
		return nil, errors.Wrap(err, "get sql.DB")
	}
	if isMemorySQLite(cfg.Database) {
		sqlDB.SetMaxOpenConns(1)
	} else {
		sqlDB.SetMaxIdleConns(cfg.Database.MaxIdleConns)
		sqlDB.SetMaxOpenConns(cfg.Database.MaxOpenConns)
		sqlDB.SetConnMaxLifetime(time.Hour)
	}

	// 接続テスト
	if err := sqlDB.Ping(); err != nil {
		return nil, closeOnInitError(sqlDB, l, errors.Wrap(err, "database ping failed"))
	}

	if cfg.Database.AutoMigrate {
		if err := Migrate(db); err != nil {
			return nil, closeOnInitError(sqlDB, l, err)
		}
	}

	l.Info("database connected",
		zap.Int("max_open_conns", sqlDB.Stats().MaxOpenConnections))

	return db, nil
}

// closeOnInitError 初期化に失敗した接続プールを閉じて元のエラーを返す
func closeOnInitError(sqlDB *sql.DB, l *zap.Logger, err error) error {
	l.Warn("closing database after failed initialization", zap.Error(err))
	_ = sqlDB.Close()
	return err
}

// Migrate スキーマを作成・更新
func Migrate(db *gorm.DB) error {
	if err := db.SetupJoinTable(&models.Work{}, "Tags", &models.WorkTag{}); err != nil {
		return errors.Wrap(err, "setup work_tags join table")
	}
	if err := db.AutoMigrate(models.All()...); err != nil {
		return errors.Wrap(err, "auto migrate")
	}
	return nil
}

// CloseDB 接続プールを閉じる
func CloseDB(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

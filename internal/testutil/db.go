package testutil

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/SketchShifter/workshelf_backend/internal/config"
)

// NewDB スキーマ作成済みのインメモリSQLiteを返す
func NewDB(t testing.TB) *gorm.DB {
	t.Helper()

	cfg := &config.Config{
		Database: config.DatabaseConfig{
			Driver:      config.DriverSQLite,
			DBName:      ":memory:",
			AutoMigrate: true,
		},
	}
	db, err := config.InitDB(cfg, zap.NewNop())
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = config.CloseDB(db)
	})
	return db
}

// NewFileDB 一時ディレクトリのファイルSQLiteを返す。複数接続で同時実行を確認する用
func NewFileDB(t testing.TB) *gorm.DB {
	t.Helper()

	cfg := &config.Config{
		Database: config.DatabaseConfig{
			Driver:       config.DriverSQLite,
			URL:          filepath.Join(t.TempDir(), "workshelf.db") + "?_pragma=busy_timeout(10000)&_pragma=journal_mode(WAL)",
			AutoMigrate:  true,
			MaxOpenConns: 8,
			MaxIdleConns: 8,
		},
	}
	db, err := config.InitDB(cfg, zap.NewNop())
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = config.CloseDB(db)
	})
	return db
}

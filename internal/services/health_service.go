package services

import (
	"context"
	"time"

	"gorm.io/gorm"
)

// Version アプリケーションバージョン
const Version = "1.0.0"

// HealthStatus ヘルスステータス
type HealthStatus struct {
	Status    string `json:"status"`
	Database  string `json:"database"`
	Uptime    string `json:"uptime"`
	Timestamp string `json:"timestamp"`
	Version   string `json:"version"`
}

// Healthy 全体が正常かどうか
func (h HealthStatus) Healthy() bool {
	return h.Status == "ok"
}

// HealthService ヘルスチェックに関するサービスインターフェース
type HealthService interface {
	GetStatus(ctx context.Context) HealthStatus
}

// healthService HealthServiceの実装
type healthService struct {
	db        *gorm.DB
	startTime time.Time
}

// NewHealthService HealthServiceを作成
func NewHealthService(db *gorm.DB) HealthService {
	return &healthService{
		db:        db,
		startTime: time.Now(),
	}
}

// GetStatus サービスのステータスを取得
func (s *healthService) GetStatus(ctx context.Context) HealthStatus {
	status := HealthStatus{
		Status:    "ok",
		Database:  "ok",
		Uptime:    time.Since(s.startTime).String(),
		Timestamp: time.Now().Format(time.RFC3339),
		Version:   Version,
	}

	sqlDB, err := s.db.DB()
	if err == nil {
		err = sqlDB.PingContext(ctx)
	}
	if err != nil {
		status.Status = "degraded"
		status.Database = "unavailable"
	}

	return status
}

package server

import (
	"context"
	"net"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/SketchShifter/workshelf_backend/internal/config"
	"github.com/SketchShifter/workshelf_backend/internal/logger"
	"github.com/SketchShifter/workshelf_backend/internal/routes"
)

// Module アプリケーション全体の依存関係
func Module(envFiles ...string) fx.Option {
	return fx.Options(
		fx.Provide(
			func() (*config.Config, error) {
				return config.Load(envFiles...)
			},
			func(cfg *config.Config) (*zap.Logger, error) {
				return logger.New(cfg.Log)
			},
			NewDB,
			routes.SetupRouter,
			NewHTTPServer,
		),
		fx.WithLogger(func(l *zap.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: l.Named("fx")}
		}),
		fx.Invoke(func(*http.Server) {}),
	)
}

// NewDB データベース接続を作成し、停止時に閉じる
func NewDB(lc fx.Lifecycle, cfg *config.Config, l *zap.Logger) (*gorm.DB, error) {
	db, err := config.InitDB(cfg, l)
	if err != nil {
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			l.Info("closing database")
			return config.CloseDB(db)
		},
	})
	return db, nil
}

// NewHTTPServer HTTPサーバーを作成し、ライフサイクルに登録
func NewHTTPServer(lc fx.Lifecycle, cfg *config.Config, router *gin.Engine, l *zap.Logger) *http.Server {
	srv := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			ln, err := net.Listen("tcp", srv.Addr)
			if err != nil {
				return errors.Wrapf(err, "listen %s", srv.Addr)
			}
			l.Info("starting HTTP server", zap.String("addr", srv.Addr))
			go func() {
				if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
					l.Error("HTTP server stopped", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			l.Info("stopping HTTP server")
			return srv.Shutdown(ctx)
		},
	})

	return srv
}

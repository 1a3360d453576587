package routes

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/SketchShifter/workshelf_backend/internal/config"
	"github.com/SketchShifter/workshelf_backend/internal/controllers"
	"github.com/SketchShifter/workshelf_backend/internal/middlewares"
	"github.com/SketchShifter/workshelf_backend/internal/repository"
	"github.com/SketchShifter/workshelf_backend/internal/services"
)

// SetupRouter ルーターを設定
func SetupRouter(cfg *config.Config, db *gorm.DB, logger *zap.Logger) *gin.Engine {
	gin.SetMode(cfg.Server.GinMode)

	r := gin.New()

	// ミドルウェアを設定
	r.Use(middlewares.RequestLogger(logger.Named("http")))
	r.Use(middlewares.ErrorMiddleware(logger))
	r.Use(middlewares.CORSMiddleware())

	// リポジトリを作成
	userRepo := repository.NewUserRepository(db)
	workRepo := repository.NewWorkRepository(db)
	tagRepo := repository.NewTagRepository(db)

	// サービスを作成
	authService := services.NewAuthService(userRepo, cfg)
	userService := services.NewUserService(userRepo)
	workService := services.NewWorkService(workRepo, logger)
	tagService := services.NewTagService(tagRepo)
	healthService := services.NewHealthService(db)

	// コントローラーを作成
	authController := controllers.NewAuthController(authService, userService)
	workController := controllers.NewWorkController(workService)
	tagController := controllers.NewTagController(tagService)
	healthController := controllers.NewHealthController(healthService)

	// 認証ミドルウェア
	authMiddleware := middlewares.AuthMiddleware(authService)

	api := r.Group("/api")
	{
		// 認証不要
		api.GET("/health", healthController.Check)
		api.POST("/signup", authController.Signup)
		api.POST("/login", authController.Login)
		api.GET("/tags", tagController.Suggest)

		// 認証が必要
		api.GET("/me", authMiddleware, authController.GetMe)
		api.POST("/works", authMiddleware, workController.Create)
		api.DELETE("/works/:id", authMiddleware, workController.Delete)
		api.POST("/search", authMiddleware, workController.Search)
	}

	return r
}

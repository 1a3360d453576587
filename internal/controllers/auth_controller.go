package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"

	"github.com/SketchShifter/workshelf_backend/internal/middlewares"
	"github.com/SketchShifter/workshelf_backend/internal/services"
)

// AuthController 認証に関するコントローラー
type AuthController struct {
	authService services.AuthService
	userService services.UserService
}

// NewAuthController AuthControllerを作成
func NewAuthController(authService services.AuthService, userService services.UserService) *AuthController {
	return &AuthController{
		authService: authService,
		userService: userService,
	}
}

// SignupRequest ユーザー登録リクエスト
type SignupRequest struct {
	Username string `json:"username" binding:"required,max=191"`
	Password string `json:"password" binding:"required,min=6,max=72"`
}

// LoginRequest ログインリクエスト
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// TokenResponse 認証レスポンス
type TokenResponse struct {
	Token string `json:"token"`
}

// MeResponse ログイン中のユーザー情報
type MeResponse struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
}

// Signup ユーザー登録
func (c *AuthController) Signup(ctx *gin.Context) {
	var req SignupRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		bindError(ctx, err)
		return
	}

	_, token, err := c.authService.Signup(ctx.Request.Context(), req.Username, req.Password)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, TokenResponse{Token: token})
}

// Login ログイン
func (c *AuthController) Login(ctx *gin.Context) {
	var req LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		bindError(ctx, err)
		return
	}

	_, token, err := c.authService.Login(ctx.Request.Context(), req.Username, req.Password)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, TokenResponse{Token: token})
}

// GetMe 現在のユーザー情報を取得
func (c *AuthController) GetMe(ctx *gin.Context) {
	userID, ok := middlewares.CurrentUserID(ctx)
	if !ok {
		respondError(ctx, services.ErrInvalidToken)
		return
	}

	user, err := c.userService.GetByID(ctx.Request.Context(), userID)
	if err != nil {
		// トークンは有効だがユーザーが消えている
		if errors.Is(err, services.ErrUserNotFound) {
			err = services.ErrInvalidToken
		}
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, MeResponse{ID: user.ID, Username: user.Username})
}

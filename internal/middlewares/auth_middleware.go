package middlewares

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/SketchShifter/workshelf_backend/internal/services"
)

// UserIDKey 認証済みユーザーIDを保存するコンテキストキー
const UserIDKey = "userID"

// AuthMiddleware 認証ミドルウェア
func AuthMiddleware(verifier services.TokenVerifier) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		// Authorizationヘッダーを取得
		authHeader := ctx.GetHeader("Authorization")

		// ヘッダーがない場合は認証エラー
		if authHeader == "" {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authorization header is required"})
			return
		}

		// Bearer トークンの形式かチェック
		if !strings.HasPrefix(authHeader, "Bearer ") {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid authorization format"})
			return
		}

		tokenString := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))

		userID, err := verifier.VerifyToken(tokenString)
		if err != nil {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": services.ErrInvalidToken.Error()})
			return
		}

		// ユーザーIDをコンテキストに保存
		ctx.Set(UserIDKey, userID)
		ctx.Next()
	}
}

// CurrentUserID コンテキストから認証済みユーザーIDを取得
func CurrentUserID(ctx *gin.Context) (uint, bool) {
	v, exists := ctx.Get(UserIDKey)
	if !exists {
		return 0, false
	}
	id, ok := v.(uint)
	return id, ok && id != 0
}

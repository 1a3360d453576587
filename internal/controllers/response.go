package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"

	"github.com/SketchShifter/workshelf_backend/internal/services"
)

// respondError エラー分類に応じたステータスでレスポンスを返す
func respondError(ctx *gin.Context, err error) {
	_ = ctx.Error(err)

	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, services.ErrValidation):
		status = http.StatusBadRequest
	case errors.Is(err, services.ErrInvalidCredentials), errors.Is(err, services.ErrInvalidToken):
		status = http.StatusUnauthorized
	case errors.Is(err, services.ErrUsernameTaken):
		status = http.StatusConflict
	case errors.Is(err, services.ErrWorkNotFound), errors.Is(err, services.ErrUserNotFound):
		status = http.StatusNotFound
	}

	ctx.JSON(status, gin.H{"success": false, "error": err.Error()})
}

// bindError リクエストボディのバインドに失敗した場合のレスポンス
func bindError(ctx *gin.Context, err error) {
	_ = ctx.Error(err)
	ctx.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
}

package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SketchShifter/workshelf_backend/internal/services"
)

// TagController タグに関するコントローラー
type TagController struct {
	tagService services.TagService
}

// NewTagController TagControllerを作成
func NewTagController(tagService services.TagService) *TagController {
	return &TagController{
		tagService: tagService,
	}
}

// Suggest 前方一致でタグ名の候補を取得
func (c *TagController) Suggest(ctx *gin.Context) {
	names, err := c.tagService.Suggest(ctx.Request.Context(), ctx.Query("q"))
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, names)
}

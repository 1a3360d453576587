package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/SketchShifter/workshelf_backend/internal/middlewares"
	"github.com/SketchShifter/workshelf_backend/internal/models"
	"github.com/SketchShifter/workshelf_backend/internal/services"
)

// WorkController 作品に関するコントローラー
type WorkController struct {
	workService services.WorkService
}

// NewWorkController WorkControllerを作成
func NewWorkController(workService services.WorkService) *WorkController {
	return &WorkController{
		workService: workService,
	}
}

// CreateWorkRequest 作品登録リクエスト
type CreateWorkRequest struct {
	PixivID string   `json:"pixivId" binding:"required,max=64"`
	Title   string   `json:"title" binding:"required"`
	Type    string   `json:"type" binding:"required,max=64"`
	Tags    []string `json:"tags" binding:"dive,required,max=191"`
}

// SearchRequest 作品検索リクエスト
type SearchRequest struct {
	Type string   `json:"type" binding:"required"`
	Tags []string `json:"tags"`
}

// WorkResponse 作品レスポンス
type WorkResponse struct {
	ID      uint     `json:"id"`
	PixivID string   `json:"pixivId"`
	Title   string   `json:"title"`
	Type    string   `json:"type"`
	Tags    []string `json:"tags"`
}

func newWorkResponse(w models.Work) WorkResponse {
	return WorkResponse{
		ID:      w.ID,
		PixivID: w.PixivID,
		Title:   w.Title,
		Type:    w.Type,
		Tags:    models.TagNames(w.Tags),
	}
}

// Create 新しい作品を作成
func (c *WorkController) Create(ctx *gin.Context) {
	userID, ok := middlewares.CurrentUserID(ctx)
	if !ok {
		respondError(ctx, services.ErrInvalidToken)
		return
	}

	var req CreateWorkRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		bindError(ctx, err)
		return
	}

	work, err := c.workService.Create(ctx.Request.Context(), userID, services.WorkInput{
		PixivID: req.PixivID,
		Title:   req.Title,
		Type:    req.Type,
		Tags:    req.Tags,
	})
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"success": true, "id": work.ID})
}

// Search 種別とタグで作品を検索
func (c *WorkController) Search(ctx *gin.Context) {
	userID, ok := middlewares.CurrentUserID(ctx)
	if !ok {
		respondError(ctx, services.ErrInvalidToken)
		return
	}

	var req SearchRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		bindError(ctx, err)
		return
	}

	works, err := c.workService.Search(ctx.Request.Context(), userID, req.Type, req.Tags)
	if err != nil {
		respondError(ctx, err)
		return
	}

	resp := make([]WorkResponse, 0, len(works))
	for _, w := range works {
		resp = append(resp, newWorkResponse(w))
	}
	ctx.JSON(http.StatusOK, resp)
}

// Delete 作品を削除
func (c *WorkController) Delete(ctx *gin.Context) {
	userID, ok := middlewares.CurrentUserID(ctx)
	if !ok {
		respondError(ctx, services.ErrInvalidToken)
		return
	}

	// IDを解析
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil || id == 0 {
		ctx.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid work id"})
		return
	}

	if err := c.workService.Delete(ctx.Request.Context(), uint(id), userID); err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"success": true})
}

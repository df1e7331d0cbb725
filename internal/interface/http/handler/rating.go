package handler

import (
	"github.com/gin-gonic/gin"

	apprating "github.com/xiebiao/bookcatalog/internal/application/rating"
	"github.com/xiebiao/bookcatalog/internal/interface/http/dto"
	"github.com/xiebiao/bookcatalog/internal/interface/http/middleware"
	"github.com/xiebiao/bookcatalog/pkg/response"
)

// RatingHandler 评分HTTP处理器
type RatingHandler struct {
	upsertRating *apprating.UpsertRatingUseCase
	topRated     *apprating.TopRatedUseCase
}

// NewRatingHandler 创建评分处理器
func NewRatingHandler(upsertRating *apprating.UpsertRatingUseCase, topRated *apprating.TopRatedUseCase) *RatingHandler {
	return &RatingHandler{upsertRating: upsertRating, topRated: topRated}
}

// UpsertRating 评分(新增或覆盖)
// @Summary      给图书评分
// @Description  同一用户对同一本书再次评分会覆盖原分值
// @Tags         评分
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        bookId path int true "图书ID"
// @Param        request body dto.AddRatingRequest true "评分(1-5)"
// @Success      200 {object} response.Response{data=apprating.RatingResponse}
// @Failure      400 {object} response.Response "参数错误"
// @Failure      404 {object} response.Response "图书不存在"
// @Router       /api/v1/books/rating/{bookId} [post]
func (h *RatingHandler) UpsertRating(c *gin.Context) {
	bookID, ok := pathID(c, "bookId")
	if !ok {
		return
	}

	var req dto.AddRatingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	result, err := h.upsertRating.Execute(c.Request.Context(), apprating.UpsertRatingRequest{
		BookID: bookID,
		UserID: middleware.MustGetUserID(c),
		Rating: req.Rating,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// TopRated 类型高分榜(公开)
// @Summary      类型高分榜
// @Description  按平均分降序、评分数降序、图书ID升序;没有评分的书不出现
// @Tags         评分
// @Produce      json
// @Param        genre path string true "类型"
// @Param        limit query int false "数量(默认5,限制在1-100)"
// @Success      200 {object} response.Response{data=[]apprating.TopRatedBookResponse}
// @Router       /api/v1/genres/top-rated/{genre} [get]
func (h *RatingHandler) TopRated(c *gin.Context) {
	var q dto.TopRatedQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		bindError(c, err)
		return
	}

	result, err := h.topRated.Execute(c.Request.Context(), apprating.TopRatedRequest{
		Genre: c.Param("genre"),
		Limit: q.Limit,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

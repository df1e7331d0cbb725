package handler

import (
	"github.com/gin-gonic/gin"

	appreview "github.com/xiebiao/bookcatalog/internal/application/review"
	"github.com/xiebiao/bookcatalog/internal/interface/http/dto"
	"github.com/xiebiao/bookcatalog/internal/interface/http/middleware"
	"github.com/xiebiao/bookcatalog/pkg/response"
)

// ReviewHandler 评论HTTP处理器
type ReviewHandler struct {
	addReview *appreview.AddReviewUseCase
}

// NewReviewHandler 创建评论处理器
func NewReviewHandler(addReview *appreview.AddReviewUseCase) *ReviewHandler {
	return &ReviewHandler{addReview: addReview}
}

// AddReview 发表评论
// @Summary      发表评论
// @Description  每个用户对每本书只能评论一次,重复评论返回409
// @Tags         评论
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        bookId path int true "图书ID"
// @Param        request body dto.CreateReviewRequest true "评论内容"
// @Success      201 {object} response.Response{data=appreview.ReviewResponse}
// @Failure      400 {object} response.Response "参数错误"
// @Failure      404 {object} response.Response "图书不存在"
// @Failure      409 {object} response.Response "已评论过"
// @Router       /api/v1/books/reviews/{bookId} [post]
func (h *ReviewHandler) AddReview(c *gin.Context) {
	bookID, ok := pathID(c, "bookId")
	if !ok {
		return
	}

	var req dto.CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	result, err := h.addReview.Execute(c.Request.Context(), appreview.AddReviewRequest{
		BookID:  bookID,
		UserID:  middleware.MustGetUserID(c),
		Comment: req.Comment,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, result)
}

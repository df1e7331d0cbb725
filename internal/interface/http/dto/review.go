package dto

// CreateReviewRequest HTTP评论请求
type CreateReviewRequest struct {
	Comment string `json:"comment" binding:"required,max=2000" example:"Changed how I think about habits."`
}

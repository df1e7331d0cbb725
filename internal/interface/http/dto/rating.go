package dto

// AddRatingRequest HTTP评分请求
type AddRatingRequest struct {
	Rating int `json:"rating" binding:"required,min=1,max=5" example:"4"`
}

// TopRatedQuery 高分榜查询参数
type TopRatedQuery struct {
	Limit *int `form:"limit" example:"5"` // 缺省5,限制在[1,100]
}

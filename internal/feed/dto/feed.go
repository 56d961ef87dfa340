package dto

type CreatePostRequest struct {
	Content  string `json:"content" binding:"required,min=1,max=2000"`
	ImageURL string `json:"image_url" binding:"omitempty,url"`
}

type UpdatePostRequest struct {
	Content string `json:"content" binding:"required,min=1,max=2000"`
}

type CreateCommentRequest struct {
	Content  string  `json:"content" binding:"required,min=1,max=1000"`
	ParentID *string `json:"parent_id"`
}

type ReactionRequest struct {
	ReactionType string `json:"reaction_type" binding:"required"`
}

type CreatePollRequest struct {
	Question string   `json:"question" binding:"required,min=1,max=500"`
	Options  []string `json:"options" binding:"required,min=2,max=10,dive,required,max=200"`
}

type VoteRequest struct {
	OptionID string `json:"option_id" binding:"required"`
}

type Pagination struct {
	Page     int `form:"page,default=1" binding:"min=1"`
	PageSize int `form:"page_size,default=10" binding:"min=1,max=50"`
}

package dto

type PostMessageRequest struct {
	Content string `json:"content" validate:"required,min=1,max=5000"`
}

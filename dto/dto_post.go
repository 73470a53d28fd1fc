package dto

type LikeRequestDTO struct {
	UserEmail string `json:"userEmail"`
}

type LikeResponse struct {
	Message string `json:"message"`
	Liked   bool   `json:"liked"`
}

type CommentRequestDTO struct {
	UserEmail string `json:"userEmail"`
	Text      string `json:"text"`
}

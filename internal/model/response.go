package model

// ErrorResponse is the body of every non-2xx JSON response.
type ErrorResponse struct {
	Error string `json:"error"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type UserResponse struct {
	Message string   `json:"message,omitempty"`
	User    AuthUser `json:"user"`
}

type ReviewResponse struct {
	Message string `json:"message"`
	Review  Review `json:"review"`
}

type ReviewListResponse struct {
	Reviews []Review `json:"reviews"`
}

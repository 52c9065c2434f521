package handler

// errorResponse documents the envelope rendered by the central error handler.
type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

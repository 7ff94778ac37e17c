package responses

// ErrorResponse lỗi trả về cho client.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

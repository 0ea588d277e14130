package dto

// ErrorResponse corpo de erro HTTP.
type ErrorResponse struct {
	Code    string `json:"code,omitempty"`
	Message string `json:"message"`
}

// MessageResponse corpo de sucesso que só carrega uma mensagem.
type MessageResponse struct {
	Message string `json:"message"`
}

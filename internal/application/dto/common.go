package dto

// ErrorResponse cuerpo de error HTTP. Code es estable para el front; Error es legible.
type ErrorResponse struct {
	Code  string `json:"code"`
	Error string `json:"error"`
}

// MessageResponse confirmación sin payload (p. ej. tras un DELETE).
type MessageResponse struct {
	Message string `json:"message"`
}

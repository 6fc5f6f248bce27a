package dto

// ApiResponse envoltorio uniforme de éxito para la API.
type ApiResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

// OK construye una respuesta exitosa con payload.
func OK(data any) ApiResponse {
	return ApiResponse{Success: true, Data: data}
}

// OKMessage construye una respuesta exitosa con mensaje y payload opcional.
func OKMessage(message string, data any) ApiResponse {
	return ApiResponse{Success: true, Message: message, Data: data}
}

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

package dto

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// MessageResponse respuesta simple con mensaje.
type MessageResponse struct {
	Message string `json:"message"`
}

// AffectedResponse respuesta de operaciones masivas (marcar todas, limpiar).
type AffectedResponse struct {
	Message string `json:"message"`
	Count   int64  `json:"count"`
}

// HealthResponse salida de GET /api/health.
type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
}

package dto

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// HealthResponse salida de GET /health.
type HealthResponse struct {
	Status  string `json:"status"`
	Storage string `json:"storage"` // memory | postgres
	Queue   string `json:"queue"`   // local | rabbitmq
}

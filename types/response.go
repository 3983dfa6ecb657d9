package types

// ErrorResponse documents the error envelope produced by the error handler
// middleware.
type ErrorResponse struct {
	Type    string `json:"type"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
	Code    string `json:"code,omitempty"`
}

// HealthStatus represents the overall service health.
type HealthStatus string

const (
	HealthStatusUp   HealthStatus = "up"
	HealthStatusDown HealthStatus = "down"
)

// HealthResponse is returned by the health endpoints.
type HealthResponse struct {
	Status  HealthStatus `json:"status"`
	Version string       `json:"version,omitempty"`
	Uptime  string       `json:"uptime,omitempty"`
}

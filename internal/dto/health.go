package dto

// HealthResponse represents the body returned by health endpoints
type HealthResponse struct {
	Status  string         `json:"status"`
	Details map[string]any `json:"details,omitempty"`
}

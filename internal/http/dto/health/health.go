package health

import "time"

// HealthStatus es el estado de un componente individual.
type HealthStatus struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// HealthResponse es la respuesta de /readyz.
type HealthResponse struct {
	Status     string                  `json:"status"`
	Components map[string]HealthStatus `json:"components"`
	Timestamp  time.Time               `json:"timestamp"`
}

package admin

import "time"

// AccessLogEntry es un evento del registro de accesos.
type AccessLogEntry struct {
	ID         string    `json:"id"`
	UserID     string    `json:"user_id,omitempty"`
	ResourceID string    `json:"resource_id"`
	Verdict    string    `json:"verdict"`
	Reason     string    `json:"reason,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

// AccessLogResponse es la página de eventos pedida.
type AccessLogResponse struct {
	Events []AccessLogEntry `json:"events"`
}

// ExplainRequest pide una evaluación en seco para otro usuario.
type ExplainRequest struct {
	UserID     string `json:"user_id"`
	Anonymous  bool   `json:"anonymous,omitempty"`
	ResourceID string `json:"resource_id"`
}

package session

// LandingResponse es el destino post-login resuelto para el actor.
type LandingResponse struct {
	Destination string `json:"destination"`
	Portal      string `json:"portal,omitempty"`
	Path        string `json:"path,omitempty"`
}

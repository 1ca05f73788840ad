package access

// ResolveRequest pide una decisión de acceso para un recurso.
type ResolveRequest struct {
	ResourceID string `json:"resource_id"`
}

// ResolveResponse es la decisión lista para que el edge la aplique.
type ResolveResponse struct {
	Verdict         string `json:"verdict"`
	RedirectURL     string `json:"redirect_url,omitempty"`
	ActivatedPortal string `json:"activated_portal,omitempty"`
	Message         string `json:"message,omitempty"`
}

// ResourceSummary es la vista pública de un recurso en listados.
type ResourceSummary struct {
	ID    string `json:"id"`
	Kind  string `json:"kind"`
	Title string `json:"title"`
	Path  string `json:"path"`
}

// VisibleResponse lista los recursos visibles para el actor.
type VisibleResponse struct {
	Resources []ResourceSummary `json:"resources"`
}

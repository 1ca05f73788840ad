package portal

// SelectRequest pide activar un portal.
type SelectRequest struct {
	PortalID string `json:"portal_id"`
}

// ActiveResponse es el portal activo del actor, si hay.
type ActiveResponse struct {
	Portal string `json:"portal,omitempty"`
	Found  bool   `json:"found"`
}

// Option es una entrada del selector de portales.
type Option struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	Active bool   `json:"active"`
}

// OptionsResponse lista las opciones del selector. Vacío significa que el
// selector no se renderiza.
type OptionsResponse struct {
	Options []Option `json:"options"`
}

// MenuItem es una entrada de menú ya filtrada.
type MenuItem struct {
	Position int    `json:"position"`
	Type     string `json:"type"`
	Label    string `json:"label"`
	TargetID string `json:"target_id,omitempty"`
	URL      string `json:"url,omitempty"`
}

// MenuResponse es el menú resuelto para el actor.
type MenuResponse struct {
	MenuID string     `json:"menu_id,omitempty"`
	Found  bool       `json:"found"`
	Items  []MenuItem `json:"items"`
}

package core

import "time"

// Identificadores tipados por entidad: cada tipo de id es incompatible con
// los demás a nivel de compilación.
type (
	UserID     string
	PortalID   string
	ResourceID string
	MenuID     string
)

// Actor es la identidad ya autenticada del request. La autenticación es
// responsabilidad del identity provider externo; este core sólo consume el
// resultado.
type Actor struct {
	ID        UserID
	Admin     bool
	Anonymous bool
}

// ResourceKind es el conjunto cerrado de variantes de contenido que el
// resolver sabe evaluar.
type ResourceKind string

const (
	KindPortal  ResourceKind = "portal"
	KindPage    ResourceKind = "page"
	KindHome    ResourceKind = "home"
	KindGeneric ResourceKind = "generic"
)

// Portal es un scope de acceso con su lista de miembros y un menú opcional.
// Se crea/edita desde el admin externo; acá es read-only.
type Portal struct {
	ID        PortalID
	Title     string
	Slug      string
	Path      string
	MenuID    *MenuID
	CreatedAt time.Time
}

// Resource es un item de contenido (página, portada, contenido genérico o el
// propio portal como entidad navegable).
type Resource struct {
	ID    ResourceID
	Kind  ResourceKind
	Title string
	Path  string

	// System marca páginas de sistema (ej. la página de selección de portal)
	// que nunca se confinan al menú del portal activo.
	System bool

	// RestrictedTo vacío = candidato a público. La visibilidad final igual
	// depende del menú del portal activo para usuarios portal-scoped.
	RestrictedTo []PortalID
}

type MenuItemType string

const (
	MenuItemPage   MenuItemType = "page"
	MenuItemCustom MenuItemType = "custom"
)

// MenuItem es una entrada de menú. El orden (Position) lo define el admin de
// menús externo y se preserva siempre.
type MenuItem struct {
	MenuID   MenuID
	Position int
	Type     MenuItemType
	Label    string
	TargetID ResourceID
	URL      string
}

// AccessEvent es un registro de auditoría de un acceso a portal, otorgado o
// denegado.
type AccessEvent struct {
	ID         string
	UserID     UserID
	ResourceID ResourceID
	Verdict    string
	Reason     string
	OccurredAt time.Time
}

// AccessEventFilter filtra el listado de auditoría. Campos vacíos no filtran.
type AccessEventFilter struct {
	UserID  UserID
	Verdict string
	Limit   int
}

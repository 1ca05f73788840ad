package core

import "context"

// ContentStore es el colaborador de lookup sobre el que decide el core.
// Las escrituras de portales/recursos/menús son del admin externo; acá sólo
// se lee, más el sink de eventos de auditoría.
//
// Un error de lookup NUNCA debe interpretarse como "vacío/público": los
// callers fallan cerrado (deniegan) cuando el store no responde.
type ContentStore interface {
	Ping(ctx context.Context) error

	// Portales
	GetPortal(ctx context.Context, id PortalID) (*Portal, error)
	GetPortalMembers(ctx context.Context, id PortalID) ([]UserID, error)
	GetUserPortals(ctx context.Context, id UserID) ([]PortalID, error)

	// Recursos
	GetResource(ctx context.Context, id ResourceID) (*Resource, error)
	GetResourceRestriction(ctx context.Context, id ResourceID) ([]PortalID, error)
	ListResources(ctx context.Context) ([]Resource, error)

	// Menús
	GetPortalMenu(ctx context.Context, id PortalID) (MenuID, error)
	GetMenuItems(ctx context.Context, id MenuID) ([]MenuItem, error)

	// Auditoría
	InsertAccessEvent(ctx context.Context, ev *AccessEvent) error
	ListAccessEvents(ctx context.Context, f AccessEventFilter) ([]AccessEvent, error)
}

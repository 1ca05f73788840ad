package portal

import (
	"context"
	"errors"
	"net/url"
	"strings"
	"time"

	"github.com/dropDatabas3/portalgate/internal/store/core"
)

// Settings es la configuración read-only que consume el core de decisión.
type Settings struct {
	// LoginURL es el destino de DenyRedirectLogin; se agrega return_to con el
	// path del recurso original.
	LoginURL string

	// DeniedRedirectURL, si está seteada, reemplaza al 404 para actores
	// autenticados sin autorización (nunca si apunta al mismo recurso).
	DeniedRedirectURL string

	// DeniedMessage es el texto para una página de denegación directa.
	DeniedMessage string

	// DefaultMenuID es el menú de fallback cuando el portal activo no tiene
	// menú asignado.
	DefaultMenuID core.MenuID

	// FrontResourceID es el recurso que actúa de portada. Vacío = portada de
	// blog, sin chequeo de menú.
	FrontResourceID core.ResourceID
}

// AccessRecorder recibe eventos de auditoría. La implementación debe ser
// fire-and-forget: nunca bloquear ni fallar el veredicto.
type AccessRecorder interface {
	Record(ev core.AccessEvent)
}

// Resolver computa el veredicto de acceso para un (actor, recurso).
//
// Es una función pura sobre sus parámetros explícitos, con un único efecto:
// visitar un portal siendo miembro lo deja como portal activo. Todo lo demás
// (membresías, portal activo) entra por parámetro, lo que permite testear
// cada decisión en forma determinística.
type Resolver struct {
	store    core.ContentStore
	state    *StateMachine
	audit    AccessRecorder // opcional
	settings Settings
}

func NewResolver(store core.ContentStore, state *StateMachine, audit AccessRecorder, settings Settings) *Resolver {
	if settings.LoginURL == "" {
		settings.LoginURL = "/login"
	}
	return &Resolver{store: store, state: state, audit: audit, settings: settings}
}

// Resolve evalúa el acceso de actor a res dado el estado explícito
// (membresías del actor y portal activo; activePortal vacío = Unset).
//
// Un error de lookup se propaga sin mapear a veredicto: el caller falla
// cerrado. Interpretar un lookup fallido como "público" filtraría contenido
// restringido.
func (r *Resolver) Resolve(ctx context.Context, actor core.Actor, res *core.Resource, userPortals []core.PortalID, activePortal core.PortalID) (Decision, error) {
	return r.decide(ctx, actor, res, userPortals, activePortal, true)
}

func (r *Resolver) decide(ctx context.Context, actor core.Actor, res *core.Resource, userPortals []core.PortalID, activePortal core.PortalID, commit bool) (Decision, error) {
	switch res.Kind {
	case core.KindPortal:
		return r.decidePortal(ctx, actor, res, commit)
	case core.KindPage:
		return r.decidePage(ctx, actor, res, userPortals, activePortal)
	case core.KindHome:
		return r.decideHome(ctx, actor, res, userPortals, activePortal)
	default:
		return r.decideGeneric(actor, userPortals), nil
	}
}

// decidePortal evalúa la visita directa a la entidad portal. Cada acceso,
// otorgado o denegado, emite un evento de auditoría; las evaluaciones en
// seco (commit=false) no emiten nada.
func (r *Resolver) decidePortal(ctx context.Context, actor core.Actor, res *core.Resource, commit bool) (Decision, error) {
	// Los portales comparten el espacio de ids con sus recursos navegables.
	pid := core.PortalID(res.ID)

	if actor.Anonymous {
		d := denyLogin(r.loginURL(res), "anonymous actor on portal entity")
		if commit {
			r.record(actor, res, d)
		}
		return d, nil
	}
	if actor.Admin {
		d := allow("administrator bypass")
		if commit {
			r.record(actor, res, d)
		}
		return d, nil
	}

	members, err := r.store.GetPortalMembers(ctx, pid)
	if err != nil {
		return Decision{}, err
	}
	if !containsUser(members, actor.ID) {
		// Cubre también el portal con lista de miembros vacía: nadie entra
		// salvo administradores.
		d := denyNotFound("actor is not a portal member")
		if commit {
			r.record(actor, res, d)
		}
		return d, nil
	}

	d := allow("portal member")
	if commit {
		if err := r.state.Activate(ctx, actor.ID, pid); err != nil {
			return Decision{}, err
		}
		d.ActivatedPortal = pid
		r.record(actor, res, d)
	}
	return d, nil
}

func (r *Resolver) decidePage(ctx context.Context, actor core.Actor, res *core.Resource, userPortals []core.PortalID, activePortal core.PortalID) (Decision, error) {
	if len(res.RestrictedTo) > 0 {
		if actor.Anonymous {
			return denyLogin(r.loginURL(res), "anonymous actor on restricted page"), nil
		}
		if actor.Admin {
			return allow("administrator bypass"), nil
		}
		if intersects(userPortals, res.RestrictedTo) {
			return allow("membership overlaps restriction"), nil
		}
		// El redirect del operador tiene precedencia sobre el 404 pelado,
		// salvo que apunte al mismo recurso denegado.
		if u := r.settings.DeniedRedirectURL; u != "" && u != res.Path {
			return denyConfigured(u, "no membership overlap, operator redirect configured"), nil
		}
		return denyNotFound("no membership overlap"), nil
	}

	// Páginas de sistema (ej. selección de portal) quedan exentas del
	// confinamiento al menú, no del chequeo de restricción de arriba.
	if res.System {
		return allow("system page"), nil
	}

	// Sin metadata de restricción: candidata a pública.
	if actor.Admin || actor.Anonymous || len(userPortals) == 0 {
		return allow("public page"), nil
	}

	// Tie-break: para usuarios portal-scoped manda el menú del portal ACTIVO,
	// aunque la página figure en el menú de otro portal del usuario. Chequear
	// "cualquier portal" era el bug de fuga cross-portal.
	in, err := r.inActiveMenu(ctx, res.ID, activePortal)
	if err != nil {
		return Decision{}, err
	}
	if !in {
		return denyNotFound("not in active portal menu"), nil
	}
	return allow("in active portal menu"), nil
}

// decideHome delega en la regla de página usando el recurso de portada
// configurado.
func (r *Resolver) decideHome(ctx context.Context, actor core.Actor, res *core.Resource, userPortals []core.PortalID, activePortal core.PortalID) (Decision, error) {
	if r.settings.FrontResourceID == "" {
		return allow("blog front, no configured front page"), nil
	}
	front, err := r.store.GetResource(ctx, r.settings.FrontResourceID)
	if err != nil {
		return Decision{}, err
	}
	return r.decidePage(ctx, actor, front, userPortals, activePortal)
}

// decideGeneric: contenido singular/archivo fuera de los tipos anteriores.
// Los usuarios portal-scoped no ven contenido genérico; el resto sí.
func (r *Resolver) decideGeneric(actor core.Actor, userPortals []core.PortalID) Decision {
	if actor.Admin {
		return allow("administrator bypass")
	}
	if !actor.Anonymous && len(userPortals) > 0 {
		return denyNotFound("portal-scoped actor on generic content")
	}
	return allow("generic content, non-portal actor")
}

// inActiveMenu reporta si el recurso figura en el menú del portal activo.
// Sin portal activo (multi-portal sin selección) o portal sin menú: false.
func (r *Resolver) inActiveMenu(ctx context.Context, id core.ResourceID, active core.PortalID) (bool, error) {
	if active == "" {
		return false, nil
	}
	menuID, err := r.store.GetPortalMenu(ctx, active)
	if errors.Is(err, core.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	items, err := r.store.GetMenuItems(ctx, menuID)
	if errors.Is(err, core.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	for _, it := range items {
		if it.Type == core.MenuItemPage && it.TargetID == id {
			return true, nil
		}
	}
	return false, nil
}

// ResolveForActor es el wrapper impuro: carga el recurso y las membresías,
// corre la máquina de estados (que puede auto-seleccionar) y recién después
// decide. El orden importa: el portal activo tiene que estar resuelto antes
// del veredicto.
func (r *Resolver) ResolveForActor(ctx context.Context, actor core.Actor, resourceID core.ResourceID) (Decision, *core.Resource, error) {
	res, err := r.store.GetResource(ctx, resourceID)
	if err != nil {
		return Decision{}, nil, err
	}

	var userPortals []core.PortalID
	var active core.PortalID
	if !actor.Anonymous {
		userPortals, err = r.store.GetUserPortals(ctx, actor.ID)
		if err != nil {
			return Decision{}, nil, err
		}
		p, ok, err := r.state.GetActive(ctx, actor.ID, userPortals)
		if err != nil {
			return Decision{}, nil, err
		}
		if ok {
			active = p
		}
	}

	d, err := r.Resolve(ctx, actor, res, userPortals, active)
	return d, res, err
}

func (r *Resolver) loginURL(res *core.Resource) string {
	u := r.settings.LoginURL
	if res.Path == "" {
		return u
	}
	sep := "?"
	if strings.Contains(u, "?") {
		sep = "&"
	}
	return u + sep + "return_to=" + url.QueryEscape(res.Path)
}

func (r *Resolver) record(actor core.Actor, res *core.Resource, d Decision) {
	if r.audit == nil {
		return
	}
	r.audit.Record(core.AccessEvent{
		UserID:     actor.ID,
		ResourceID: res.ID,
		Verdict:    string(d.Verdict),
		Reason:     d.Reason,
		OccurredAt: time.Now(),
	})
}

func containsUser(users []core.UserID, u core.UserID) bool {
	for _, x := range users {
		if x == u {
			return true
		}
	}
	return false
}

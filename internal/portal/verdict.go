package portal

import "github.com/dropDatabas3/portalgate/internal/store/core"

// Verdict es el resultado del Resolver.
type Verdict string

const (
	Allow Verdict = "allow"

	// DenyNotFound: denegado sin redirect configurado. El caller renderiza un
	// 404 genérico, indistinguible de "el recurso no existe" para no filtrar
	// existencia de contenido restringido.
	DenyNotFound Verdict = "deny_not_found"

	// DenyRedirectLogin: actor anónimo sobre contenido restringido; el caller
	// redirige a login con return-to al recurso original.
	DenyRedirectLogin Verdict = "deny_redirect_login"

	// DenyRedirectConfigured: autenticado pero sin autorización, con URL de
	// fallback configurada por el operador.
	DenyRedirectConfigured Verdict = "deny_redirect_configured"
)

// Denied reporta si el veredicto es cualquiera de las denegaciones.
func (v Verdict) Denied() bool { return v != Allow }

// Decision es el veredicto más el contexto que la capa de render necesita
// para ejecutarlo.
type Decision struct {
	Verdict Verdict

	// RedirectURL acompaña a los veredictos de redirect.
	RedirectURL string

	// ActivatedPortal se setea cuando la visita a un portal lo dejó activo.
	ActivatedPortal core.PortalID

	// Reason es interno (auditoría/debug). Nunca se muestra al denegado.
	Reason string
}

func allow(reason string) Decision {
	return Decision{Verdict: Allow, Reason: reason}
}

func denyNotFound(reason string) Decision {
	return Decision{Verdict: DenyNotFound, Reason: reason}
}

func denyLogin(url, reason string) Decision {
	return Decision{Verdict: DenyRedirectLogin, RedirectURL: url, Reason: reason}
}

func denyConfigured(url, reason string) Decision {
	return Decision{Verdict: DenyRedirectConfigured, RedirectURL: url, Reason: reason}
}

package portal

import "errors"

var (
	// ErrUnauthorizedPortal se retorna cuando un actor intenta seleccionar o
	// cambiar a un portal del que no es miembro. Se rechaza la operación, no
	// se ignora en silencio.
	ErrUnauthorizedPortal = errors.New("portal: actor is not a member of the requested portal")

	// ErrNotAdmin se retorna cuando una operación de diagnóstico requiere un
	// actor administrador.
	ErrNotAdmin = errors.New("portal: operation requires an administrator")
)

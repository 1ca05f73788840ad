package middlewares

import "net/http"

// Middleware decora un http.Handler.
type Middleware func(http.Handler) http.Handler

// Chain compone middlewares de izquierda a derecha: Chain(h, A, B) ejecuta
// A, después B, después h. A es el más externo, el último en ver la
// respuesta.
func Chain(h http.Handler, mws ...Middleware) http.Handler {
	for i := len(mws) - 1; i >= 0; i-- {
		h = mws[i](h)
	}
	return h
}

package middlewares

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func tag(name string, order *[]string) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			*order = append(*order, name)
			next.ServeHTTP(w, r)
		})
	}
}

func TestChainRunsLeftToRight(t *testing.T) {
	var order []string
	h := Chain(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		order = append(order, "handler")
	}), tag("a", &order), tag("b", &order))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	if len(order) != 3 || order[0] != "a" || order[1] != "b" || order[2] != "handler" {
		t.Fatalf("orden: %v", order)
	}
}

func TestWithRequestIDGeneratesAndPropagates(t *testing.T) {
	var seen string
	h := Chain(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = GetRequestID(r.Context())
	}), WithRequestID())

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	if seen == "" {
		t.Fatal("sin request id en el contexto")
	}
	if got := rr.Header().Get("X-Request-ID"); got != seen {
		t.Fatalf("header %q != contexto %q", got, seen)
	}
}

func TestWithRequestIDHonorsClientHeader(t *testing.T) {
	var seen string
	h := Chain(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = GetRequestID(r.Context())
	}), WithRequestID())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", "rid-from-edge")
	h.ServeHTTP(httptest.NewRecorder(), req)

	if seen != "rid-from-edge" {
		t.Fatalf("got %q", seen)
	}
}

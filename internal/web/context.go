package web

import (
	"net"
	"net/http"

	"github.com/JonMunkholm/catalog/internal/core"
)

// clientIP returns the caller address. RemoteAddr has already been rewritten
// by TrustedRealIP when the request came through a trusted proxy.
func clientIP(r *http.Request) string {
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}

// withClientIP stores the client address in the request context so service
// logs can name who ran an import or a delete.
func withClientIP(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := core.ContextWithClientIP(r.Context(), clientIP(r))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

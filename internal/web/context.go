package web

import (
	"net"
	"net/http"

	"github.com/JonMunkholm/stockroom/internal/core"
)

// withActor records the client IP and User-Agent on the request context so
// store mutations can log who made them.
func withActor(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip := r.RemoteAddr // already resolved by TrustedRealIP
		if host, _, err := net.SplitHostPort(ip); err == nil {
			ip = host
		}
		ctx := core.ContextWithActor(r.Context(), core.Actor{IP: ip, UserAgent: r.UserAgent()})
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

package controller

import (
	"net/http"
	"slices"
)

const corsAllowHeaders = "Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, " +
	RequestIDHeader

// WithCORS returns a middleware that lets browsers on allowedOrigins call the
// account API. An empty list or "*" allows every origin. Sessions travel in
// the Authorization header, so credentials are never allowed. OPTIONS
// preflight requests are answered with 204 No Content.
func WithCORS(allowedOrigins []string) func(http.Handler) http.Handler {
	anyOrigin := len(allowedOrigins) == 0 || slices.Contains(allowedOrigins, "*")

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := w.Header()
			switch origin := r.Header.Get("Origin"); {
			case anyOrigin:
				h.Set("Access-Control-Allow-Origin", "*")
			case origin != "" && slices.Contains(allowedOrigins, origin):
				h.Set("Access-Control-Allow-Origin", origin)
				h.Add("Vary", "Origin")
			}
			h.Set("Access-Control-Allow-Headers", corsAllowHeaders)
			h.Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
			h.Set("Access-Control-Expose-Headers", RequestIDHeader)

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)

				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

package server

import (
	"net/http"
	"strings"
)

// SecurityConfig controls the hardening middleware applied to every
// endpoint the observability server exposes.
type SecurityConfig struct {
	// EnableCORS turns on cross-origin headers for browser dashboards.
	EnableCORS bool
	// AllowedOrigins lists origins allowed to read the endpoints;
	// "*" allows any.
	AllowedOrigins []string
	// AllowedMethods lists the HTTP methods advertised in preflight
	// responses.
	AllowedMethods []string
}

// DefaultSecurityConfig returns the hardened defaults: CORS open to any
// origin, read-only methods.
func DefaultSecurityConfig() SecurityConfig {
	return SecurityConfig{
		EnableCORS:     true,
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "OPTIONS"},
	}
}

// SecurityMiddleware sets standard security headers, applies the CORS
// policy and answers preflight requests before delegating to next.
func SecurityMiddleware(config SecurityConfig, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("X-Frame-Options", "DENY")
		h.Set("X-XSS-Protection", "1; mode=block")
		h.Set("Referrer-Policy", "strict-origin-when-cross-origin")
		h.Set("Content-Security-Policy", "default-src 'none'; frame-ancestors 'none'")

		if config.EnableCORS {
			if origin := allowedOrigin(config.AllowedOrigins, r.Header.Get("Origin")); origin != "" {
				h.Set("Access-Control-Allow-Origin", origin)
				h.Set("Access-Control-Allow-Methods", strings.Join(config.AllowedMethods, ", "))
			}
		}

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next(w, r)
	}
}

// allowedOrigin resolves the Access-Control-Allow-Origin value for a
// request origin, empty when the origin is not allowed.
func allowedOrigin(allowed []string, origin string) string {
	for _, a := range allowed {
		if a == "*" {
			return "*"
		}
		if a == origin {
			return origin
		}
	}
	return ""
}

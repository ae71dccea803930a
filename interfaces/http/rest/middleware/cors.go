package middleware

import (
	"net/http"
	"strings"

	"github.com/go-chi/cors"
	"go.uber.org/zap"
)

// OriginPolicy decides which browser origins may call the API: an exact allow-list
// plus at most one wildcard pattern such as "https://*.vercel.app" for preview deployments.
type OriginPolicy struct {
	allowed map[string]struct{}
	prefix  string
	suffix  string
}

// NewOriginPolicy creates a policy. An empty pattern disables wildcard matching.
func NewOriginPolicy(allowed []string, previewPattern string) *OriginPolicy {
	p := &OriginPolicy{allowed: make(map[string]struct{}, len(allowed))}
	for _, origin := range allowed {
		p.allowed[strings.TrimSuffix(origin, "/")] = struct{}{}
	}
	if prefix, suffix, ok := strings.Cut(previewPattern, "*"); ok {
		p.prefix = prefix
		p.suffix = suffix
	}
	return p
}

// Allows reports whether origin passes the policy
func (p *OriginPolicy) Allows(origin string) bool {
	if _, ok := p.allowed[origin]; ok {
		return true
	}
	if p.prefix == "" && p.suffix == "" {
		return false
	}
	if len(origin) <= len(p.prefix)+len(p.suffix) {
		return false
	}
	if !strings.HasPrefix(origin, p.prefix) || !strings.HasSuffix(origin, p.suffix) {
		return false
	}
	// The wildcard stands for host labels only
	middle := origin[len(p.prefix) : len(origin)-len(p.suffix)]
	return !strings.ContainsAny(middle, "/:@?#")
}

// RejectDisallowedOrigins answers 403 for requests carrying an Origin the policy
// refuses. Requests without an Origin header pass.
func RejectDisallowedOrigins(policy *OriginPolicy, logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			if origin != "" && !policy.Allows(origin) {
				logger.Warn("Rejected request from disallowed origin",
					zap.String("origin", origin),
					zap.String("method", r.Method),
					zap.String("path", r.URL.Path),
				)
				http.Error(w, "Not allowed by CORS", http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// CORS sets the CORS response headers for allowed origins and answers preflights
func CORS(policy *OriginPolicy) func(next http.Handler) http.Handler {
	return cors.Handler(cors.Options{
		AllowOriginFunc: func(r *http.Request, origin string) bool {
			return policy.Allows(origin)
		},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", RequestIDHeader},
		ExposedHeaders:   []string{RequestIDHeader},
		AllowCredentials: false,
		MaxAge:           300,
	})
}

// NoStore marks every response as uncacheable
func NoStore(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "no-store")
		next.ServeHTTP(w, r)
	})
}

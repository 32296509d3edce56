package chi

import (
	"context"
	"net/http"
	"strings"

	domrec "github.com/kailas-cloud/facetdex/internal/domain/record"
)

// exemptPaths are routes that bypass authentication (health, metrics).
var exemptPaths = map[string]struct{}{
	"/health":  {},
	"/metrics": {},
}

type audienceKey struct{}

// WithAudience stores the caller's audience in the context.
func WithAudience(ctx context.Context, a domrec.Audience) context.Context {
	return context.WithValue(ctx, audienceKey{}, a)
}

// AudienceFromContext returns the caller's audience. Defaults to Public.
func AudienceFromContext(ctx context.Context) domrec.Audience {
	if a, ok := ctx.Value(audienceKey{}).(domrec.Audience); ok {
		return a
	}
	return domrec.Public
}

// BearerAuthMiddleware resolves the caller's audience from a Bearer token.
// Requests without a header browse as the public; a valid key grants staff access.
// If apiKeys is empty, authentication is disabled and every caller is staff.
func BearerAuthMiddleware(apiKeys []string) func(http.Handler) http.Handler {
	validKeys := make(map[string]struct{}, len(apiKeys))
	for _, k := range apiKeys {
		if k != "" {
			validKeys[k] = struct{}{}
		}
	}

	return func(next http.Handler) http.Handler {
		// Auth disabled
		if len(validKeys) == 0 {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				next.ServeHTTP(w, r.WithContext(WithAudience(r.Context(), domrec.Staff)))
			})
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := exemptPaths[r.URL.Path]; ok {
				next.ServeHTTP(w, r)
				return
			}

			auth := r.Header.Get("Authorization")
			if auth == "" {
				next.ServeHTTP(w, r.WithContext(WithAudience(r.Context(), domrec.Public)))
				return
			}

			const bearerPrefix = "Bearer "
			if !strings.HasPrefix(auth, bearerPrefix) {
				writeError(w, http.StatusUnauthorized, CodeUnauthorized, "authorization header must use Bearer scheme")
				return
			}

			token := auth[len(bearerPrefix):]
			if _, ok := validKeys[token]; !ok {
				writeError(w, http.StatusUnauthorized, CodeUnauthorized, "invalid api key")
				return
			}

			next.ServeHTTP(w, r.WithContext(WithAudience(r.Context(), domrec.Staff)))
		})
	}
}

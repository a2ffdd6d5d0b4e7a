package middleware

import (
	"log/slog"
	"net/http"

	"github.com/acucogn/site/internal/logging"
	"github.com/acucogn/site/internal/util"
)

// RequestContext attaches the request path and client IP to the context so
// every log record written while serving the request carries them.
func RequestContext(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := logging.WithAttrs(r.Context(),
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.String("ip", util.ClientIP(r)),
		)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

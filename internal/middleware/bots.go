package middleware

import (
	"log/slog"
	"net/http"

	"github.com/mileusna/useragent"
)

// IsBot reports whether the User-Agent belongs to a crawler or an empty
// client string.
func IsBot(userAgent string) bool {
	if userAgent == "" {
		return true
	}
	return useragent.Parse(userAgent).Bot
}

// BlockBots rejects crawlers with 403. It guards the chat form post, which
// spends model tokens and has nothing to index.
func BlockBots(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if ua := r.UserAgent(); IsBot(ua) {
			slog.InfoContext(r.Context(), "bot request rejected", "user_agent", ua)
			WriteAPIError(w, http.StatusForbidden, "forbidden", "Automated clients are not allowed.")
			return
		}
		next.ServeHTTP(w, r)
	})
}

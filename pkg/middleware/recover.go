package middleware

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/pmaterna/apibase/pkg/handlers"
)

// Recover returns middleware that converts handler panics into a 500 JSON
// error envelope instead of an unstructured failure page. The panic value
// is logged; the response carries a generic message.
func Recover(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					logger.Error("panic recovered",
						"panic", fmt.Sprint(rec),
						"method", r.Method,
						"path", r.URL.Path,
					)
					w.Header().Set("Connection", "close")
					handlers.RespondError(w, logger, http.StatusInternalServerError,
						fmt.Errorf("internal server error"))
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}

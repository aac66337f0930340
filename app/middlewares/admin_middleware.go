package middlewares

import (
	"context"
	"net/http"

	"github.com/Rakhulsr/rainy-catalog/app/helpers"
	"github.com/Rakhulsr/rainy-catalog/app/utils/sessions"
	"github.com/unrolled/render"
	"go.uber.org/zap"
)

// AdminAuthMiddleware rejects requests without a staff session and stores the
// staff username in the request context.
func AdminAuthMiddleware(store sessions.SessionStore, rdr *render.Render, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			username := store.GetStaffUser(r)
			if username == "" {
				logger.Debug("AdminAuthMiddleware: no staff session", zap.String("path", r.URL.Path))
				rdr.JSON(w, http.StatusUnauthorized, helpers.NewAPIError(
					helpers.CodeNotAuthenticated,
					"Authentication credentials were not provided.",
					nil,
				))
				return
			}

			ctx := context.WithValue(r.Context(), helpers.ContextKeyStaffUser, username)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func StaffUser(r *http.Request) string {
	username, _ := r.Context().Value(helpers.ContextKeyStaffUser).(string)
	return username
}

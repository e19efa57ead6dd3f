package middleware

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"layman-go/internal/httperr"
	"layman-go/internal/service"
)

// Authorize returns middleware gating workspace publication routes of one
// publication type. It extracts (workspace, name, method, actor) from the
// request (the "name" route param is absent on collection routes) and
// lets the request through only when the authorization service allows it.
// Denials terminate the request with the mapped domain error.
func Authorize(authz *service.AuthorizationService, ptype string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			req := service.AuthzRequest{
				Workspace:       chi.URLParam(r, "workspace"),
				PublicationType: ptype,
				PublicationName: chi.URLParam(r, "name"),
				Method:          r.Method,
				Actor:           ActorFromContext(r.Context()),
			}

			if err := authz.Authorize(r.Context(), req); err != nil {
				httperr.Write(w, err)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

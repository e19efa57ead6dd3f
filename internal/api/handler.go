// Package api provides the HTTP handlers for the catalog REST API.
package api

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"layman-go/internal/domain"
	"layman-go/internal/httperr"
	"layman-go/internal/middleware"
	"layman-go/internal/service"
)

// Handler serves the /rest API.
type Handler struct {
	publications *service.PublicationService
	roles        *service.RoleService
	workspaces   domain.WorkspaceRepository
	logger       *slog.Logger
}

// NewHandler creates a Handler with its service dependencies.
func NewHandler(
	publications *service.PublicationService,
	roles *service.RoleService,
	workspaces domain.WorkspaceRepository,
	logger *slog.Logger,
) *Handler {
	return &Handler{
		publications: publications,
		roles:        roles,
		workspaces:   workspaces,
		logger:       logger,
	}
}

// Routes assembles the /rest router. Publication routes run behind the
// authorize middleware; discovery routes (roles, users, global listing)
// are open; the global listing filters per item instead.
func (h *Handler) Routes(authz *service.AuthorizationService) chi.Router {
	r := chi.NewRouter()

	r.Get("/roles", h.GetRoles)
	r.Get("/users", h.GetUsers)
	r.Get("/publications", h.GetPublications)

	for _, ptype := range []string{domain.TypeLayer, domain.TypeMap} {
		h.publicationRoutes(r, authz, ptype)
	}

	return r
}

func (h *Handler) publicationRoutes(r chi.Router, authz *service.AuthorizationService, ptype string) {
	// The URL segment is the plural of the type ("layers", "maps"). The
	// guard is attached per route with With so it runs after routing has
	// resolved the {name} param.
	guard := middleware.Authorize(authz, ptype)
	r.Route("/workspaces/{workspace}/"+ptype+"s", func(r chi.Router) {
		r.MethodNotAllowed(h.unsupportedMethod(authz, ptype))

		r.With(guard).Get("/", h.listCollection(ptype))
		r.With(guard).Post("/", h.postCollection(ptype))
		r.With(guard).Delete("/", h.deleteCollection(ptype))

		r.Route("/{name}", func(r chi.Router) {
			r.MethodNotAllowed(h.unsupportedMethod(authz, ptype))

			r.With(guard).Get("/", h.getPublication(ptype))
			r.With(guard).Patch("/", h.patchPublication(ptype))
			r.With(guard).Delete("/", h.deletePublication(ptype))
		})
	})
}

// unsupportedMethod replaces chi's plain-text 405 so that unrouted verbs
// still go through the authorizer: an unknown workspace reports not-found
// before the method error does.
func (h *Handler) unsupportedMethod(authz *service.AuthorizationService, ptype string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req := service.AuthzRequest{
			Workspace:       chi.URLParam(r, "workspace"),
			PublicationType: ptype,
			PublicationName: chi.URLParam(r, "name"),
			Method:          r.Method,
			Actor:           middleware.ActorFromContext(r.Context()),
		}
		if err := authz.Authorize(r.Context(), req); err != nil {
			httperr.Write(w, err)
			return
		}
		httperr.Write(w, domain.ErrUnsupportedMethod(r.Method))
	}
}

// --- helpers ---

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		httperr.Write(w, domain.ErrValidation(domain.CodeInvalidParameter,
			"invalid JSON body: %v", err))
		return false
	}
	return true
}

package api

import (
	"net/http"

	"layman-go/internal/httperr"
)

// GetRoles lists every assignable role name, EVERYONE included.
func (h *Handler) GetRoles(w http.ResponseWriter, r *http.Request) {
	roles, err := h.roles.GetAllRoles(r.Context())
	if err != nil {
		httperr.Write(w, err)
		return
	}
	writeJSON(w, http.StatusOK, roles)
}

// GetUsers lists every known user name. Users are provisioned on first
// authenticated request, so this is the set of personal workspace owners.
func (h *Handler) GetUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.workspaces.ListUsers(r.Context())
	if err != nil {
		httperr.Write(w, err)
		return
	}
	writeJSON(w, http.StatusOK, users)
}

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"layman-go/internal/domain"
	"layman-go/internal/httperr"
	"layman-go/internal/middleware"
	"layman-go/internal/service"
)

type publishRequest struct {
	Name         string                     `json:"name"`
	Title        string                     `json:"title"`
	AccessRights *domain.AccessRightsUpdate `json:"access_rights"`
}

type patchRequest struct {
	Title        *string                    `json:"title"`
	AccessRights *domain.AccessRightsUpdate `json:"access_rights"`
}

// GetPublications lists every publication readable by the actor, across
// all workspaces and both types.
func (h *Handler) GetPublications(w http.ResponseWriter, r *http.Request) {
	actor := middleware.ActorFromContext(r.Context())
	items, err := h.publications.ListAll(r.Context(), actor)
	if err != nil {
		httperr.Write(w, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (h *Handler) listCollection(ptype string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor := middleware.ActorFromContext(r.Context())
		workspace := chi.URLParam(r, "workspace")

		items, err := h.publications.List(r.Context(), actor, workspace, ptype)
		if err != nil {
			httperr.Write(w, err)
			return
		}
		writeJSON(w, http.StatusOK, items)
	}
}

func (h *Handler) postCollection(ptype string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		workspace := chi.URLParam(r, "workspace")

		var req publishRequest
		if !decodeJSON(w, r, &req) {
			return
		}

		pub, err := h.publications.Publish(r.Context(), workspace, ptype, service.PublishParams{
			Name:   req.Name,
			Title:  req.Title,
			Rights: req.AccessRights,
		})
		if err != nil {
			httperr.Write(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, pub)
	}
}

func (h *Handler) deleteCollection(ptype string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor := middleware.ActorFromContext(r.Context())
		workspace := chi.URLParam(r, "workspace")

		deleted, err := h.publications.BulkDelete(r.Context(), actor, workspace, ptype)
		if err != nil {
			httperr.Write(w, err)
			return
		}
		writeJSON(w, http.StatusOK, deleted)
	}
}

func (h *Handler) getPublication(ptype string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		workspace := chi.URLParam(r, "workspace")
		name := chi.URLParam(r, "name")

		pub, err := h.publications.Get(r.Context(), workspace, ptype, name)
		if err != nil {
			httperr.Write(w, err)
			return
		}
		writeJSON(w, http.StatusOK, pub)
	}
}

func (h *Handler) patchPublication(ptype string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		workspace := chi.URLParam(r, "workspace")
		name := chi.URLParam(r, "name")

		var req patchRequest
		if !decodeJSON(w, r, &req) {
			return
		}

		pub, err := h.publications.Patch(r.Context(), workspace, ptype, name, service.PatchParams{
			Title:  req.Title,
			Rights: req.AccessRights,
		})
		if err != nil {
			httperr.Write(w, err)
			return
		}
		writeJSON(w, http.StatusOK, pub)
	}
}

func (h *Handler) deletePublication(ptype string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		workspace := chi.URLParam(r, "workspace")
		name := chi.URLParam(r, "name")

		pub, err := h.publications.Delete(r.Context(), workspace, ptype, name)
		if err != nil {
			httperr.Write(w, err)
			return
		}
		writeJSON(w, http.StatusOK, pub)
	}
}

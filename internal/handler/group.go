package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/itchan-dev/yatube/shared/api"
	"github.com/itchan-dev/yatube/shared/domain"
	"github.com/itchan-dev/yatube/shared/utils"
)

// Groups lists all groups, newest first.
func (h *Handler) Groups(w http.ResponseWriter, r *http.Request) {
	groups, err := h.group.GetAll()
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	response := api.GroupListResponse{Groups: make([]api.GroupResponse, 0, len(groups))}
	for _, group := range groups {
		response.Groups = append(response.Groups, api.NewGroupResponse(group))
	}
	writeJSON(w, response)
}

// CreateGroup is admin-only, enforced by the router.
func (h *Handler) CreateGroup(w http.ResponseWriter, r *http.Request) {
	var req api.CreateGroupRequest
	if err := utils.DecodeValidate(r.Body, &req); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	data := domain.GroupCreationData{Title: req.Title, Slug: req.Slug, Description: req.Description}
	if _, err := h.group.Create(data); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	w.WriteHeader(http.StatusCreated)
}

// DeleteGroup is admin-only, enforced by the router. Posts of a deleted
// group stay published without a group.
func (h *Handler) DeleteGroup(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	if err := h.group.Delete(slug); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
}

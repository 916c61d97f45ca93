package handler

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/itchan-dev/yatube/internal/forms"
	"github.com/itchan-dev/yatube/internal/service"
	"github.com/itchan-dev/yatube/shared/api"
	"github.com/itchan-dev/yatube/shared/domain"
	"github.com/itchan-dev/yatube/shared/utils"
)

// Index lists all posts, newest first, paginated.
func (h *Handler) Index(w http.ResponseWriter, r *http.Request) {
	page, err := h.post.Index(requestedPage(r))
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	writeJSON(w, api.PostListResponse{
		Posts: api.NewPostResponses(page.Items),
		Page:  pageInfo(page),
	})
}

// GroupPosts lists posts of one group.
func (h *Handler) GroupPosts(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	group, page, err := h.post.GroupPosts(slug, requestedPage(r))
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	writeJSON(w, api.GroupPostsResponse{
		Group: api.NewGroupResponse(*group),
		Posts: api.NewPostResponses(page.Items),
		Page:  pageInfo(page),
	})
}

// Profile lists posts of one author.
func (h *Handler) Profile(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")

	author, page, err := h.post.Profile(username, requestedPage(r))
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	writeJSON(w, api.ProfileResponse{
		Author: api.NewUserResponse(author),
		Posts:  api.NewPostResponses(page.Items),
		Page:   pageInfo(page),
	})
}

// PostDetail shows one post with rendered text and author context.
func (h *Handler) PostDetail(w http.ResponseWriter, r *http.Request) {
	id, err := parseIntParam(chi.URLParam(r, "id"), "post id")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	post, authorPostCount, err := h.post.Get(id)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	writeJSON(w, api.PostDetailResponse{
		Post:            api.NewPostResponse(*post),
		TextHTML:        h.markdown.Render(post.Text),
		AuthorPostCount: authorPostCount,
	})
}

// PostCreate serves the create form (GET) and persists a new post (POST).
// Requires an authenticated identity; the guard redirects anonymous
// callers to login.
func (h *Handler) PostCreate(w http.ResponseWriter, r *http.Request) {
	user := h.requireUser(w, r)
	if user == nil {
		return
	}

	if r.Method == http.MethodGet {
		writeJSON(w, api.PostFormResponse{})
		return
	}

	var form forms.PostForm
	if err := utils.Decode(r.Body, &form); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	_, fieldErrors, err := h.post.Create(*user, form)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	if fieldErrors != nil {
		// validation failure is a normal outcome: redisplay, don't fail
		writeJSON(w, api.PostFormResponse{
			Form:   api.PostFormValues{Text: form.Text, GroupId: form.GroupId},
			Errors: fieldErrors,
		})
		return
	}

	http.Redirect(w, r, profilePath(user.Username), http.StatusSeeOther)
}

// PostEdit serves the prefilled edit form (GET) and applies the edit (POST).
// Only the author may edit; everyone else is sent back to the post detail
// view without an error page.
func (h *Handler) PostEdit(w http.ResponseWriter, r *http.Request) {
	user := h.requireUser(w, r)
	if user == nil {
		return
	}

	id, err := parseIntParam(chi.URLParam(r, "id"), "post id")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if r.Method == http.MethodGet {
		h.postEditForm(w, r, id, user)
		return
	}

	var form forms.PostForm
	if err := utils.Decode(r.Body, &form); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	fieldErrors, err := h.post.Edit(id, *user, form)
	if errors.Is(err, service.ErrNotAuthor) {
		http.Redirect(w, r, postDetailPath(id), http.StatusFound)
		return
	}
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	if fieldErrors != nil {
		writeJSON(w, api.PostFormResponse{
			Form:   api.PostFormValues{Text: form.Text, GroupId: form.GroupId},
			Errors: fieldErrors,
			IsEdit: true,
		})
		return
	}

	http.Redirect(w, r, postDetailPath(id), http.StatusSeeOther)
}

func (h *Handler) postEditForm(w http.ResponseWriter, r *http.Request, id domain.PostId, user *domain.User) {
	post, _, err := h.post.Get(id)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	if post.Author.Id != user.Id {
		http.Redirect(w, r, postDetailPath(id), http.StatusFound)
		return
	}

	values := api.PostFormValues{Text: post.Text}
	if post.Group != nil {
		values.GroupId = &post.Group.Id
	}
	writeJSON(w, api.PostFormResponse{Form: values, IsEdit: true})
}

package handler

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/itchan-dev/yatube/internal/pagination"
	"github.com/itchan-dev/yatube/shared/api"
	"github.com/itchan-dev/yatube/shared/domain"
	mw "github.com/itchan-dev/yatube/shared/middleware"
)

// requireUser is the explicit auth guard for mutating handlers.
// Anonymous callers get redirected to login with a return target and the
// handler must stop (nil return).
func (h *Handler) requireUser(w http.ResponseWriter, r *http.Request) *domain.User {
	user := mw.GetUserFromContext(r)
	if user == nil {
		http.Redirect(w, r, "/auth/login?next="+url.QueryEscape(r.URL.RequestURI()), http.StatusFound)
		return nil
	}
	return user
}

func postDetailPath(id domain.PostId) string {
	return fmt.Sprintf("/posts/%d/", id)
}

func profilePath(username domain.Username) string {
	return "/profile/" + url.PathEscape(username) + "/"
}

// parseIntParam parses an integer parameter from a string and returns a meaningful error
func parseIntParam(param string, paramName string) (int64, error) {
	val, err := strconv.ParseInt(param, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: must be an integer", paramName)
	}
	return val, nil
}

func pageInfo(page pagination.Page[domain.Post]) api.PageInfo {
	return api.PageInfo{Number: page.Number, HasMore: page.HasMore, Total: page.Total}
}

func requestedPage(r *http.Request) int {
	return pagination.ParsePage(r.URL.Query().Get("page"))
}

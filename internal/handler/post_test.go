package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/itchan-dev/yatube/internal/forms"
	"github.com/itchan-dev/yatube/internal/markdown"
	"github.com/itchan-dev/yatube/internal/pagination"
	"github.com/itchan-dev/yatube/internal/service"
	"github.com/itchan-dev/yatube/shared/api"
	"github.com/itchan-dev/yatube/shared/domain"
	internal_errors "github.com/itchan-dev/yatube/shared/errors"
	mw "github.com/itchan-dev/yatube/shared/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// MockPostService implements the service.PostService interface
type MockPostService struct {
	MockIndex      func(page int) (pagination.Page[domain.Post], error)
	MockGroupPosts func(slug domain.GroupSlug, page int) (*domain.Group, pagination.Page[domain.Post], error)
	MockProfile    func(username domain.Username, page int) (domain.User, pagination.Page[domain.Post], error)
	MockGet        func(id domain.PostId) (*domain.Post, int, error)
	MockCreate     func(author domain.User, form forms.PostForm) (domain.PostId, forms.FieldErrors, error)
	MockEdit       func(id domain.PostId, editor domain.User, form forms.PostForm) (forms.FieldErrors, error)
}

func (m *MockPostService) Index(page int) (pagination.Page[domain.Post], error) {
	if m.MockIndex != nil {
		return m.MockIndex(page)
	}
	return pagination.Page[domain.Post]{}, nil
}

func (m *MockPostService) GroupPosts(slug domain.GroupSlug, page int) (*domain.Group, pagination.Page[domain.Post], error) {
	if m.MockGroupPosts != nil {
		return m.MockGroupPosts(slug, page)
	}
	return &domain.Group{}, pagination.Page[domain.Post]{}, nil
}

func (m *MockPostService) Profile(username domain.Username, page int) (domain.User, pagination.Page[domain.Post], error) {
	if m.MockProfile != nil {
		return m.MockProfile(username, page)
	}
	return domain.User{}, pagination.Page[domain.Post]{}, nil
}

func (m *MockPostService) Get(id domain.PostId) (*domain.Post, int, error) {
	if m.MockGet != nil {
		return m.MockGet(id)
	}
	return &domain.Post{}, 0, nil
}

func (m *MockPostService) Create(author domain.User, form forms.PostForm) (domain.PostId, forms.FieldErrors, error) {
	if m.MockCreate != nil {
		return m.MockCreate(author, form)
	}
	return 0, nil, nil
}

func (m *MockPostService) Edit(id domain.PostId, editor domain.User, form forms.PostForm) (forms.FieldErrors, error) {
	if m.MockEdit != nil {
		return m.MockEdit(id, editor, form)
	}
	return nil, nil
}

var errNotFound = &internal_errors.ErrorWithStatusCode{Message: "Not found", StatusCode: http.StatusNotFound}

func setupPostTestHandler(postService service.PostService) *chi.Mux {
	h := &Handler{
		post:     postService,
		markdown: markdown.New(),
	}
	router := chi.NewRouter()
	router.Get("/", h.Index)
	router.Get("/group/{slug}/", h.GroupPosts)
	router.Get("/profile/{username}/", h.Profile)
	router.Get("/posts/{id:[0-9]+}/", h.PostDetail)
	router.Get("/create/", h.PostCreate)
	router.Post("/create/", h.PostCreate)
	router.Get("/posts/{id:[0-9]+}/edit/", h.PostEdit)
	router.Post("/posts/{id:[0-9]+}/edit/", h.PostEdit)
	return router
}

func withUser(req *http.Request, user *domain.User) *http.Request {
	ctx := context.WithValue(req.Context(), mw.UserClaimsKey, user)
	return req.WithContext(ctx)
}

func testPost(id domain.PostId, author domain.User) domain.Post {
	return domain.Post{
		Id:      id,
		Text:    "Just a test post with some longer text",
		PubDate: time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC),
		Author:  author,
	}
}

func TestIndexHandler(t *testing.T) {
	author := domain.User{Id: 1, Username: "leo"}

	t.Run("successful request", func(t *testing.T) {
		mockService := &MockPostService{
			MockIndex: func(page int) (pagination.Page[domain.Post], error) {
				assert.Equal(t, 2, page)
				return pagination.Page[domain.Post]{
					Items:  []domain.Post{testPost(11, author)},
					Number: 2, HasMore: false, Total: 11,
				}, nil
			},
		}
		router := setupPostTestHandler(mockService)

		req := httptest.NewRequest(http.MethodGet, "/?page=2", nil)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		require.Equal(t, http.StatusOK, rr.Code)
		var response api.PostListResponse
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &response))
		require.Len(t, response.Posts, 1)
		assert.Equal(t, "Just a test pos", response.Posts[0].Summary)
		assert.Equal(t, "leo", response.Posts[0].Author.Username)
		assert.Equal(t, 2, response.Page.Number)
		assert.Equal(t, 11, response.Page.Total)
	})

	t.Run("garbage page falls back to first", func(t *testing.T) {
		mockService := &MockPostService{
			MockIndex: func(page int) (pagination.Page[domain.Post], error) {
				assert.Equal(t, 1, page)
				return pagination.Page[domain.Post]{Number: 1}, nil
			},
		}
		router := setupPostTestHandler(mockService)

		req := httptest.NewRequest(http.MethodGet, "/?page=banana", nil)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
	})
}

func TestGroupPostsHandler(t *testing.T) {
	t.Run("unknown slug returns 404", func(t *testing.T) {
		mockService := &MockPostService{
			MockGroupPosts: func(slug domain.GroupSlug, page int) (*domain.Group, pagination.Page[domain.Post], error) {
				assert.Equal(t, "no-such-group", slug)
				return nil, pagination.Page[domain.Post]{}, errNotFound
			},
		}
		router := setupPostTestHandler(mockService)

		req := httptest.NewRequest(http.MethodGet, "/group/no-such-group/", nil)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusNotFound, rr.Code)
	})

	t.Run("successful request", func(t *testing.T) {
		author := domain.User{Id: 1, Username: "leo"}
		mockService := &MockPostService{
			MockGroupPosts: func(slug domain.GroupSlug, page int) (*domain.Group, pagination.Page[domain.Post], error) {
				group := domain.Group{Id: 3, Title: "Cats", Slug: slug, Description: "About cats"}
				return &group, pagination.Page[domain.Post]{
					Items:  []domain.Post{testPost(1, author)},
					Number: 1, Total: 1,
				}, nil
			},
		}
		router := setupPostTestHandler(mockService)

		req := httptest.NewRequest(http.MethodGet, "/group/cats/", nil)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		require.Equal(t, http.StatusOK, rr.Code)
		var response api.GroupPostsResponse
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &response))
		assert.Equal(t, "cats", response.Group.Slug)
		assert.Len(t, response.Posts, 1)
	})
}

func TestProfileHandler(t *testing.T) {
	t.Run("unknown username returns 404", func(t *testing.T) {
		mockService := &MockPostService{
			MockProfile: func(username domain.Username, page int) (domain.User, pagination.Page[domain.Post], error) {
				return domain.User{}, pagination.Page[domain.Post]{}, errNotFound
			},
		}
		router := setupPostTestHandler(mockService)

		req := httptest.NewRequest(http.MethodGet, "/profile/nobody/", nil)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusNotFound, rr.Code)
	})

	t.Run("successful request", func(t *testing.T) {
		author := domain.User{Id: 7, Username: "leo", PassHash: "secret"}
		mockService := &MockPostService{
			MockProfile: func(username domain.Username, page int) (domain.User, pagination.Page[domain.Post], error) {
				assert.Equal(t, "leo", username)
				return author, pagination.Page[domain.Post]{
					Items:  []domain.Post{testPost(1, author)},
					Number: 1, Total: 1,
				}, nil
			},
		}
		router := setupPostTestHandler(mockService)

		req := httptest.NewRequest(http.MethodGet, "/profile/leo/", nil)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		require.Equal(t, http.StatusOK, rr.Code)
		assert.NotContains(t, rr.Body.String(), "secret")
		var response api.ProfileResponse
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &response))
		assert.Equal(t, "leo", response.Author.Username)
	})
}

func TestPostDetailHandler(t *testing.T) {
	t.Run("unknown id returns 404", func(t *testing.T) {
		mockService := &MockPostService{
			MockGet: func(id domain.PostId) (*domain.Post, int, error) {
				return nil, 0, errNotFound
			},
		}
		router := setupPostTestHandler(mockService)

		req := httptest.NewRequest(http.MethodGet, "/posts/999/", nil)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusNotFound, rr.Code)
	})

	t.Run("non numeric id not routed", func(t *testing.T) {
		router := setupPostTestHandler(&MockPostService{})

		req := httptest.NewRequest(http.MethodGet, "/posts/abc/", nil)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusNotFound, rr.Code)
	})

	t.Run("renders text and reports author post count", func(t *testing.T) {
		author := domain.User{Id: 1, Username: "leo"}
		post := testPost(5, author)
		post.Text = "plain **bold**"
		mockService := &MockPostService{
			MockGet: func(id domain.PostId) (*domain.Post, int, error) {
				assert.Equal(t, domain.PostId(5), id)
				return &post, 42, nil
			},
		}
		router := setupPostTestHandler(mockService)

		req := httptest.NewRequest(http.MethodGet, "/posts/5/", nil)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		require.Equal(t, http.StatusOK, rr.Code)
		var response api.PostDetailResponse
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &response))
		assert.Equal(t, 42, response.AuthorPostCount)
		assert.Contains(t, response.TextHTML, "<strong>bold</strong>")
	})
}

func TestPostCreateHandler(t *testing.T) {
	user := domain.User{Id: 1, Username: "leo"}

	t.Run("anonymous is redirected to login", func(t *testing.T) {
		created := false
		mockService := &MockPostService{
			MockCreate: func(author domain.User, form forms.PostForm) (domain.PostId, forms.FieldErrors, error) {
				created = true
				return 0, nil, nil
			},
		}
		router := setupPostTestHandler(mockService)

		req := httptest.NewRequest(http.MethodPost, "/create/", bytes.NewBufferString(`{"text": "hi"}`))
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusFound, rr.Code)
		assert.Equal(t, "/auth/login?next=%2Fcreate%2F", rr.Header().Get("Location"))
		assert.False(t, created, "anonymous request must not reach the service")
	})

	t.Run("GET returns empty form", func(t *testing.T) {
		router := setupPostTestHandler(&MockPostService{})

		req := withUser(httptest.NewRequest(http.MethodGet, "/create/", nil), &user)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		require.Equal(t, http.StatusOK, rr.Code)
		var response api.PostFormResponse
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &response))
		assert.False(t, response.IsEdit)
		assert.Empty(t, response.Errors)
	})

	t.Run("successful create redirects to profile", func(t *testing.T) {
		groupId := domain.GroupId(3)
		mockService := &MockPostService{
			MockCreate: func(author domain.User, form forms.PostForm) (domain.PostId, forms.FieldErrors, error) {
				assert.Equal(t, user, author)
				assert.Equal(t, "new post", form.Text)
				require.NotNil(t, form.GroupId)
				assert.Equal(t, groupId, *form.GroupId)
				return 10, nil, nil
			},
		}
		router := setupPostTestHandler(mockService)

		body := bytes.NewBufferString(`{"text": "new post", "group_id": 3}`)
		req := withUser(httptest.NewRequest(http.MethodPost, "/create/", body), &user)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusSeeOther, rr.Code)
		assert.Equal(t, "/profile/leo/", rr.Header().Get("Location"))
	})

	t.Run("field errors redisplay the form", func(t *testing.T) {
		mockService := &MockPostService{
			MockCreate: func(author domain.User, form forms.PostForm) (domain.PostId, forms.FieldErrors, error) {
				return 0, forms.FieldErrors{"text": forms.ErrRequired}, nil
			},
		}
		router := setupPostTestHandler(mockService)

		body := bytes.NewBufferString(`{"text": ""}`)
		req := withUser(httptest.NewRequest(http.MethodPost, "/create/", body), &user)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		require.Equal(t, http.StatusOK, rr.Code)
		var response api.PostFormResponse
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &response))
		assert.Equal(t, forms.ErrRequired, response.Errors["text"])
		assert.False(t, response.IsEdit)
	})

	t.Run("invalid json returns 400", func(t *testing.T) {
		router := setupPostTestHandler(&MockPostService{})

		body := bytes.NewBufferString(`{broken`)
		req := withUser(httptest.NewRequest(http.MethodPost, "/create/", body), &user)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestPostEditHandler(t *testing.T) {
	owner := domain.User{Id: 1, Username: "leo"}
	stranger := domain.User{Id: 2, Username: "mallory"}

	t.Run("anonymous is redirected to login", func(t *testing.T) {
		router := setupPostTestHandler(&MockPostService{})

		req := httptest.NewRequest(http.MethodPost, "/posts/5/edit/", bytes.NewBufferString(`{"text": "hi"}`))
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusFound, rr.Code)
		assert.Equal(t, "/auth/login?next=%2Fposts%2F5%2Fedit%2F", rr.Header().Get("Location"))
	})

	t.Run("non author is redirected to the post", func(t *testing.T) {
		mockService := &MockPostService{
			MockEdit: func(id domain.PostId, editor domain.User, form forms.PostForm) (forms.FieldErrors, error) {
				assert.Equal(t, stranger, editor)
				return nil, service.ErrNotAuthor
			},
		}
		router := setupPostTestHandler(mockService)

		body := bytes.NewBufferString(`{"text": "hijacked"}`)
		req := withUser(httptest.NewRequest(http.MethodPost, "/posts/5/edit/", body), &stranger)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusFound, rr.Code)
		assert.Equal(t, "/posts/5/", rr.Header().Get("Location"))
	})

	t.Run("GET by non author redirects without form", func(t *testing.T) {
		post := testPost(5, owner)
		mockService := &MockPostService{
			MockGet: func(id domain.PostId) (*domain.Post, int, error) {
				return &post, 1, nil
			},
		}
		router := setupPostTestHandler(mockService)

		req := withUser(httptest.NewRequest(http.MethodGet, "/posts/5/edit/", nil), &stranger)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusFound, rr.Code)
		assert.Equal(t, "/posts/5/", rr.Header().Get("Location"))
	})

	t.Run("GET by author returns prefilled form", func(t *testing.T) {
		groupId := domain.GroupId(3)
		post := testPost(5, owner)
		post.Group = &domain.Group{Id: groupId, Title: "Cats", Slug: "cats"}
		mockService := &MockPostService{
			MockGet: func(id domain.PostId) (*domain.Post, int, error) {
				return &post, 1, nil
			},
		}
		router := setupPostTestHandler(mockService)

		req := withUser(httptest.NewRequest(http.MethodGet, "/posts/5/edit/", nil), &owner)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		require.Equal(t, http.StatusOK, rr.Code)
		var response api.PostFormResponse
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &response))
		assert.True(t, response.IsEdit)
		assert.Equal(t, post.Text, response.Form.Text)
		require.NotNil(t, response.Form.GroupId)
		assert.Equal(t, groupId, *response.Form.GroupId)
	})

	t.Run("successful edit redirects to the post", func(t *testing.T) {
		mockService := &MockPostService{
			MockEdit: func(id domain.PostId, editor domain.User, form forms.PostForm) (forms.FieldErrors, error) {
				assert.Equal(t, domain.PostId(5), id)
				assert.Equal(t, owner, editor)
				return nil, nil
			},
		}
		router := setupPostTestHandler(mockService)

		body := bytes.NewBufferString(`{"text": "edited"}`)
		req := withUser(httptest.NewRequest(http.MethodPost, "/posts/5/edit/", body), &owner)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusSeeOther, rr.Code)
		assert.Equal(t, "/posts/5/", rr.Header().Get("Location"))
	})

	t.Run("field errors redisplay the edit form", func(t *testing.T) {
		mockService := &MockPostService{
			MockEdit: func(id domain.PostId, editor domain.User, form forms.PostForm) (forms.FieldErrors, error) {
				return forms.FieldErrors{"group": forms.ErrInvalidChoice}, nil
			},
		}
		router := setupPostTestHandler(mockService)

		body := bytes.NewBufferString(`{"text": "fine", "group_id": 999}`)
		req := withUser(httptest.NewRequest(http.MethodPost, "/posts/5/edit/", body), &owner)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		require.Equal(t, http.StatusOK, rr.Code)
		var response api.PostFormResponse
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &response))
		assert.True(t, response.IsEdit)
		assert.Equal(t, forms.ErrInvalidChoice, response.Errors["group"])
	})

	t.Run("unknown post returns 404", func(t *testing.T) {
		mockService := &MockPostService{
			MockEdit: func(id domain.PostId, editor domain.User, form forms.PostForm) (forms.FieldErrors, error) {
				return nil, errNotFound
			},
		}
		router := setupPostTestHandler(mockService)

		body := bytes.NewBufferString(`{"text": "hi"}`)
		req := withUser(httptest.NewRequest(http.MethodPost, "/posts/999/edit/", body), &owner)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}

package service

import (
	"net/http"

	"github.com/itchan-dev/yatube/internal/forms"
	"github.com/itchan-dev/yatube/internal/pagination"
	"github.com/itchan-dev/yatube/shared/domain"
	internal_errors "github.com/itchan-dev/yatube/shared/errors"
)

// to mock service in tests
type PostService interface {
	Index(page int) (pagination.Page[domain.Post], error)
	GroupPosts(slug domain.GroupSlug, page int) (*domain.Group, pagination.Page[domain.Post], error)
	Profile(username domain.Username, page int) (domain.User, pagination.Page[domain.Post], error)
	Get(id domain.PostId) (*domain.Post, int, error)
	Create(author domain.User, form forms.PostForm) (domain.PostId, forms.FieldErrors, error)
	Edit(id domain.PostId, editor domain.User, form forms.PostForm) (forms.FieldErrors, error)
}

type Post struct {
	storage  PostStorage
	pageSize int
}

type PostStorage interface {
	CreatePost(author domain.User, data domain.PostCreationData) (domain.PostId, error)
	GetPost(id domain.PostId) (*domain.Post, error)
	UpdatePost(id domain.PostId, data domain.PostCreationData) error
	ListPosts() ([]domain.Post, error)
	ListPostsByGroup(groupId domain.GroupId) ([]domain.Post, error)
	ListPostsByAuthor(authorId domain.UserId) ([]domain.Post, error)
	CountPostsByAuthor(authorId domain.UserId) (int, error)
	GetGroup(slug domain.GroupSlug) (*domain.Group, error)
	GetGroupById(id domain.GroupId) (*domain.Group, error)
	UserByUsername(username domain.Username) (domain.User, error)
}

// ErrNotAuthor is returned by Edit when the editor doesn't own the post.
// The handler turns it into a redirect to the post detail view.
var ErrNotAuthor = &internal_errors.ErrorWithStatusCode{Message: "Only the author can edit a post", StatusCode: http.StatusForbidden}

func NewPost(storage PostStorage, pageSize int) PostService {
	return &Post{storage, pageSize}
}

func (p *Post) Index(page int) (pagination.Page[domain.Post], error) {
	posts, err := p.storage.ListPosts()
	if err != nil {
		return pagination.Page[domain.Post]{}, err
	}
	return pagination.Paginate(posts, p.pageSize, page), nil
}

func (p *Post) GroupPosts(slug domain.GroupSlug, page int) (*domain.Group, pagination.Page[domain.Post], error) {
	group, err := p.storage.GetGroup(slug)
	if err != nil {
		return nil, pagination.Page[domain.Post]{}, err
	}
	posts, err := p.storage.ListPostsByGroup(group.Id)
	if err != nil {
		return nil, pagination.Page[domain.Post]{}, err
	}
	return group, pagination.Paginate(posts, p.pageSize, page), nil
}

func (p *Post) Profile(username domain.Username, page int) (domain.User, pagination.Page[domain.Post], error) {
	author, err := p.storage.UserByUsername(username)
	if err != nil {
		return domain.User{}, pagination.Page[domain.Post]{}, err
	}
	posts, err := p.storage.ListPostsByAuthor(author.Id)
	if err != nil {
		return domain.User{}, pagination.Page[domain.Post]{}, err
	}
	return author, pagination.Paginate(posts, p.pageSize, page), nil
}

// Get returns the post together with its author's total post count.
func (p *Post) Get(id domain.PostId) (*domain.Post, int, error) {
	post, err := p.storage.GetPost(id)
	if err != nil {
		return nil, 0, err
	}
	count, err := p.storage.CountPostsByAuthor(post.Author.Id)
	if err != nil {
		return nil, 0, err
	}
	return post, count, nil
}

// Create validates the form and persists a new post owned by author.
// Field errors are the normal negative outcome: nothing is persisted and
// the caller redisplays the form.
func (p *Post) Create(author domain.User, form forms.PostForm) (domain.PostId, forms.FieldErrors, error) {
	data, fieldErrors, err := form.Validate(p.storage)
	if err != nil {
		return 0, nil, err
	}
	if fieldErrors != nil {
		return 0, fieldErrors, nil
	}

	id, err := p.storage.CreatePost(author, data)
	if err != nil {
		return 0, nil, err
	}
	return id, nil, nil
}

// Edit replaces text and group of an existing post. Only the author may
// edit; everyone else gets ErrNotAuthor and the post stays untouched.
func (p *Post) Edit(id domain.PostId, editor domain.User, form forms.PostForm) (forms.FieldErrors, error) {
	post, err := p.storage.GetPost(id)
	if err != nil {
		return nil, err
	}
	if post.Author.Id != editor.Id {
		return nil, ErrNotAuthor
	}

	data, fieldErrors, err := form.Validate(p.storage)
	if err != nil {
		return nil, err
	}
	if fieldErrors != nil {
		return fieldErrors, nil
	}

	if err := p.storage.UpdatePost(id, data); err != nil {
		return nil, err
	}
	return nil, nil
}

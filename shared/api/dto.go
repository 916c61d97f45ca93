package api

import (
	"time"

	"github.com/itchan-dev/yatube/shared/domain"
)

// Request DTOs

type SignupRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type CreateGroupRequest struct {
	Title       string `json:"title" validate:"required"`
	Slug        string `json:"slug" validate:"required"`
	Description string `json:"description" validate:"required"`
}

// PostFormValues carries the submitted (or redisplayed) post form fields.
// group_id null means "no group".
type PostFormValues struct {
	Text    string          `json:"text"`
	GroupId *domain.GroupId `json:"group_id"`
}

// Response DTOs

type UserResponse struct {
	Id       int64  `json:"id"`
	Username string `json:"username"`
}

type GroupResponse struct {
	Id          int64  `json:"id"`
	Title       string `json:"title"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
}

type PostResponse struct {
	Id      int64          `json:"id"`
	Text    string         `json:"text"`
	Summary string         `json:"summary"`
	PubDate time.Time      `json:"pub_date"`
	Author  UserResponse   `json:"author"`
	Group   *GroupResponse `json:"group,omitempty"`
}

type PageInfo struct {
	Number  int  `json:"number"`
	HasMore bool `json:"has_more"`
	Total   int  `json:"total"`
}

type PostListResponse struct {
	Posts []PostResponse `json:"posts"`
	Page  PageInfo       `json:"page"`
}

type GroupPostsResponse struct {
	Group GroupResponse  `json:"group"`
	Posts []PostResponse `json:"posts"`
	Page  PageInfo       `json:"page"`
}

type ProfileResponse struct {
	Author UserResponse   `json:"author"`
	Posts  []PostResponse `json:"posts"`
	Page   PageInfo       `json:"page"`
}

type PostDetailResponse struct {
	Post            PostResponse `json:"post"`
	TextHTML        string       `json:"text_html"`
	AuthorPostCount int          `json:"author_post_count"`
}

// PostFormResponse is the redisplayable form state for create/edit.
// A non-empty Errors map is a normal outcome, not a failure.
type PostFormResponse struct {
	Form   PostFormValues    `json:"form"`
	Errors map[string]string `json:"errors,omitempty"`
	IsEdit bool              `json:"is_edit"`
}

type GroupListResponse struct {
	Groups []GroupResponse `json:"groups"`
}

// Converters from domain types. PassHash never leaves the API boundary.

func NewUserResponse(user domain.User) UserResponse {
	return UserResponse{Id: user.Id, Username: user.Username}
}

func NewGroupResponse(group domain.Group) GroupResponse {
	return GroupResponse{Id: group.Id, Title: group.Title, Slug: group.Slug, Description: group.Description}
}

func NewPostResponse(post domain.Post) PostResponse {
	response := PostResponse{
		Id:      post.Id,
		Text:    post.Text,
		Summary: post.Summary(),
		PubDate: post.PubDate,
		Author:  NewUserResponse(post.Author),
	}
	if post.Group != nil {
		group := NewGroupResponse(*post.Group)
		response.Group = &group
	}
	return response
}

func NewPostResponses(posts []domain.Post) []PostResponse {
	responses := make([]PostResponse, len(posts))
	for i, post := range posts {
		responses[i] = NewPostResponse(post)
	}
	return responses
}

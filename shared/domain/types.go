package domain

type (
	Username = string
	Password = string
	UserId   = int64

	GroupTitle = string
	GroupSlug  = string
	GroupId    = int64

	PostText = string
	PostId   = int64
)

package domain

import (
	"time"
)

// to iterate thru layers: handler -> service -> storage
type PostCreationData struct {
	Text    PostText
	GroupId *GroupId
}

type Post struct {
	Id      PostId
	Text    PostText
	PubDate time.Time
	Group   *Group // nil when post belongs to no group
	Author  User
}

package domain

import "time"

type User struct {
	Id        int64
	Username  string
	PassHash  string
	Admin     bool
	CreatedAt time.Time
}

type Credentials struct {
	Username Username
	Password Password
}

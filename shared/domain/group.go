package domain

// to iterate thru layers: handler -> service -> storage
type GroupCreationData struct {
	Title       GroupTitle
	Slug        GroupSlug
	Description string
}

type Group struct {
	Id          GroupId
	Title       GroupTitle
	Slug        GroupSlug
	Description string
}

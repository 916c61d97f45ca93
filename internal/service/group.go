package service

import (
	"github.com/itchan-dev/yatube/shared/domain"
)

// to mock service in tests
type GroupService interface {
	Create(data domain.GroupCreationData) (domain.GroupId, error)
	GetAll() ([]domain.Group, error)
	Delete(slug domain.GroupSlug) error
}

type Group struct {
	storage   GroupStorage
	validator GroupValidator
}

type GroupStorage interface {
	CreateGroup(data domain.GroupCreationData) (domain.GroupId, error)
	GetGroups() ([]domain.Group, error)
	DeleteGroup(slug domain.GroupSlug) error
}

type GroupValidator interface {
	Title(title domain.GroupTitle) error
	Slug(slug domain.GroupSlug) error
	Description(description string) error
}

func NewGroup(storage GroupStorage, validator GroupValidator) GroupService {
	return &Group{storage, validator}
}

func (g *Group) Create(data domain.GroupCreationData) (domain.GroupId, error) {
	if err := g.validator.Title(data.Title); err != nil {
		return 0, err
	}
	if err := g.validator.Slug(data.Slug); err != nil {
		return 0, err
	}
	if err := g.validator.Description(data.Description); err != nil {
		return 0, err
	}
	return g.storage.CreateGroup(data)
}

func (g *Group) GetAll() ([]domain.Group, error) {
	return g.storage.GetGroups()
}

func (g *Group) Delete(slug domain.GroupSlug) error {
	if err := g.validator.Slug(slug); err != nil {
		return err
	}
	return g.storage.DeleteGroup(slug)
}

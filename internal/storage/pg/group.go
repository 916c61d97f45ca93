package pg

import (
	"database/sql"
	"errors"

	"github.com/itchan-dev/yatube/shared/domain"
	internal_errors "github.com/itchan-dev/yatube/shared/errors"
	"github.com/lib/pq"
)

const pgUniqueViolation = "23505"

// Saves group to db. Slug uniqueness is enforced by the groups_slug_key
// constraint, a duplicate comes back as 409.
func (s *Storage) CreateGroup(data domain.GroupCreationData) (domain.GroupId, error) {
	var id domain.GroupId
	err := s.db.QueryRow(`
	INSERT INTO groups(title, slug, description)
	VALUES($1, $2, $3)
	RETURNING id`, data.Title, data.Slug, data.Description).Scan(&id)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == pgUniqueViolation {
			return 0, &internal_errors.ErrorWithStatusCode{Message: "Group with this slug already exists", StatusCode: 409}
		}
		return 0, err
	}
	return id, nil
}

func (s *Storage) GetGroup(slug domain.GroupSlug) (*domain.Group, error) {
	var group domain.Group
	err := s.db.QueryRow(`
	SELECT id, title, slug, description
	FROM groups
	WHERE slug = $1`, slug).Scan(&group.Id, &group.Title, &group.Slug, &group.Description)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, &internal_errors.ErrorWithStatusCode{Message: "Group not found", StatusCode: 404}
		}
		return nil, err
	}
	return &group, nil
}

func (s *Storage) GetGroupById(id domain.GroupId) (*domain.Group, error) {
	var group domain.Group
	err := s.db.QueryRow(`
	SELECT id, title, slug, description
	FROM groups
	WHERE id = $1`, id).Scan(&group.Id, &group.Title, &group.Slug, &group.Description)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, &internal_errors.ErrorWithStatusCode{Message: "Group not found", StatusCode: 404}
		}
		return nil, err
	}
	return &group, nil
}

func (s *Storage) GetGroups() ([]domain.Group, error) {
	rows, err := s.db.Query(`
	SELECT id, title, slug, description
	FROM groups
	ORDER BY id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var groups []domain.Group
	for rows.Next() {
		var group domain.Group
		if err := rows.Scan(&group.Id, &group.Title, &group.Slug, &group.Description); err != nil {
			return nil, err
		}
		groups = append(groups, group)
	}
	return groups, rows.Err()
}

// Deletes group. Posts of the group survive with group_id reset to NULL
// (ON DELETE SET NULL on posts.group_id).
func (s *Storage) DeleteGroup(slug domain.GroupSlug) error {
	result, err := s.db.Exec("DELETE FROM groups WHERE slug = $1", slug)
	if err != nil {
		return err
	}
	deleted, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if deleted == 0 {
		return &internal_errors.ErrorWithStatusCode{Message: "Group not found", StatusCode: 404}
	}
	return nil
}

package pg

import (
	"database/sql"
	"errors"

	"github.com/itchan-dev/yatube/shared/domain"
	internal_errors "github.com/itchan-dev/yatube/shared/errors"
	"github.com/lib/pq"
)

func (s *Storage) SaveUser(user domain.User) (domain.UserId, error) {
	var id domain.UserId
	err := s.db.QueryRow(`
	INSERT INTO users(username, pass_hash, admin)
	VALUES($1, $2, $3)
	RETURNING id`, user.Username, user.PassHash, user.Admin).Scan(&id)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == pgUniqueViolation {
			return 0, &internal_errors.ErrorWithStatusCode{Message: "User already exists", StatusCode: 409}
		}
		return 0, err
	}
	return id, nil
}

func (s *Storage) UserByUsername(username domain.Username) (domain.User, error) {
	var user domain.User
	err := s.db.QueryRow(`
	SELECT id, username, pass_hash, admin, created
	FROM users
	WHERE username = $1`, username).Scan(&user.Id, &user.Username, &user.PassHash, &user.Admin, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.User{}, &internal_errors.ErrorWithStatusCode{Message: "User not found", StatusCode: 404}
		}
		return domain.User{}, err
	}
	return user, nil
}

// Deletes user together with their posts (ON DELETE CASCADE on posts.author_id).
func (s *Storage) DeleteUser(username domain.Username) error {
	result, err := s.db.Exec("DELETE FROM users WHERE username = $1", username)
	if err != nil {
		return err
	}
	deleted, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if deleted == 0 {
		return &internal_errors.ErrorWithStatusCode{Message: "User not found", StatusCode: 404}
	}
	return nil
}

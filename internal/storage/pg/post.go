package pg

import (
	"database/sql"
	"errors"
	"time"

	"github.com/itchan-dev/yatube/shared/domain"
	internal_errors "github.com/itchan-dev/yatube/shared/errors"
)

const postColumns = `
	p.id,
	p.text,
	p.pub_date,
	p.group_id,
	g.title,
	g.slug,
	g.description,
	u.id,
	u.username`

const postFrom = `
	FROM posts p
	LEFT JOIN groups g ON g.id = p.group_id
	JOIN users u ON u.id = p.author_id`

type postScanner interface {
	Scan(dest ...any) error
}

func scanPost(row postScanner) (domain.Post, error) {
	var post domain.Post
	var groupId sql.NullInt64
	var groupTitle, groupSlug, groupDescription sql.NullString

	err := row.Scan(
		&post.Id,
		&post.Text,
		&post.PubDate,
		&groupId,
		&groupTitle,
		&groupSlug,
		&groupDescription,
		&post.Author.Id,
		&post.Author.Username,
	)
	if err != nil {
		return domain.Post{}, err
	}
	if groupId.Valid {
		post.Group = &domain.Group{
			Id:          groupId.Int64,
			Title:       groupTitle.String,
			Slug:        groupSlug.String,
			Description: groupDescription.String,
		}
	}
	return post, nil
}

func (s *Storage) listPosts(where string, args ...any) ([]domain.Post, error) {
	// pub_date DESC is the listing contract, every caller gets it
	query := "SELECT " + postColumns + postFrom
	if where != "" {
		query += " WHERE " + where
	}
	query += " ORDER BY p.pub_date DESC"

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var posts []domain.Post
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			return nil, err
		}
		posts = append(posts, post)
	}
	return posts, rows.Err()
}

// Saves post to db. pub_date is assigned here and never updated afterwards.
func (s *Storage) CreatePost(author domain.User, data domain.PostCreationData) (domain.PostId, error) {
	pubDate := time.Now().UTC().Round(time.Microsecond) // database anyway round to microsecond

	var id domain.PostId
	err := s.db.QueryRow(`
	INSERT INTO posts(text, pub_date, group_id, author_id)
	VALUES($1, $2, $3, $4)
	RETURNING id`, data.Text, pubDate, data.GroupId, author.Id).Scan(&id)
	if err != nil {
		return 0, err
	}
	return id, nil
}

func (s *Storage) GetPost(id domain.PostId) (*domain.Post, error) {
	row := s.db.QueryRow("SELECT "+postColumns+postFrom+" WHERE p.id = $1", id)
	post, err := scanPost(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, &internal_errors.ErrorWithStatusCode{Message: "Post not found", StatusCode: 404}
		}
		return nil, err
	}
	return &post, nil
}

// Replaces text and group of an existing post. pub_date and author stay.
func (s *Storage) UpdatePost(id domain.PostId, data domain.PostCreationData) error {
	result, err := s.db.Exec(`
	UPDATE posts SET
		text = $1,
		group_id = $2
	WHERE id = $3`, data.Text, data.GroupId, id)
	if err != nil {
		return err
	}
	updated, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if updated == 0 {
		return &internal_errors.ErrorWithStatusCode{Message: "Post not found", StatusCode: 404}
	}
	return nil
}

func (s *Storage) ListPosts() ([]domain.Post, error) {
	return s.listPosts("")
}

func (s *Storage) ListPostsByGroup(groupId domain.GroupId) ([]domain.Post, error) {
	return s.listPosts("p.group_id = $1", groupId)
}

func (s *Storage) ListPostsByAuthor(authorId domain.UserId) ([]domain.Post, error) {
	return s.listPosts("p.author_id = $1", authorId)
}

func (s *Storage) CountPostsByAuthor(authorId domain.UserId) (int, error) {
	var count int
	err := s.db.QueryRow("SELECT count(*) FROM posts WHERE author_id = $1", authorId).Scan(&count)
	if err != nil {
		return 0, err
	}
	return count, nil
}

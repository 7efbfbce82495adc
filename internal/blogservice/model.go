package blogservice

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"
)

var (
	ErrRecordNotFound = errors.New("record not found")
	ErrUserForeignKey = errors.New("owner_id does not exist")
	ErrMalformedID    = errors.New("malformed id")
)

var _ Store = (*BlogModel)(nil)

func NewBlogModel(db *sql.DB) *BlogModel {
	return &BlogModel{db: db}
}

// ForeignKeyError is a helper function to check if the error is a foreign key constraint error.
func ForeignKeyError(err error, name string) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		if pqErr.Code == "23503" && pqErr.Constraint == name {
			return true
		}
	}

	return false
}

// invalidTextError reports whether postgres rejected a value for its type, e.g. a non uuid id.
func invalidTextError(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "22P02"
}

const selectBlogs = `
		SELECT b.id, b.title, b.author, b.url, b.likes, u.id, u.name, u.username
		FROM blogs b
		LEFT JOIN users u ON b.owner_id = u.id`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBlog(row rowScanner) (*Blog, error) {
	var b Blog
	var ownerID, name, username sql.NullString

	err := row.Scan(&b.ID, &b.Title, &b.Author, &b.URL, &b.Likes, &ownerID, &name, &username)
	if err != nil {
		return nil, err
	}

	if ownerID.Valid {
		b.Owner = &Owner{ID: ownerID.String, Name: name.String, Username: username.String}
	}

	return &b, nil
}

func (m *BlogModel) GetBlogs(ctx context.Context) ([]Blog, error) {
	query := selectBlogs + `
		ORDER BY b.created_at, b.id`

	rows, err := m.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	blogs := []Blog{}

	for rows.Next() {
		b, err := scanBlog(rows)
		if err != nil {
			return nil, err
		}

		blogs = append(blogs, *b)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return blogs, nil
}

// GetBlogByID is a method to get a blog by its ID joining the users table to populate the owner.
func (m *BlogModel) GetBlogByID(ctx context.Context, id string) (*Blog, error) {
	query := selectBlogs + `
		WHERE b.id = $1`

	b, err := scanBlog(m.db.QueryRowContext(ctx, query, id))
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, ErrRecordNotFound
		case invalidTextError(err):
			return nil, ErrMalformedID
		default:
			return nil, err
		}
	}

	return b, nil
}

// InsertBlog stores b and sets its ID. The owner, if any, must exist.
func (m *BlogModel) InsertBlog(ctx context.Context, b *Blog) error {
	query := `
		INSERT INTO blogs (title, author, url, likes, owner_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`

	var ownerID any
	if b.Owner != nil {
		ownerID = b.Owner.ID
	}

	err := m.db.QueryRowContext(ctx, query, b.Title, b.Author, b.URL, b.Likes, ownerID).Scan(&b.ID)
	if err != nil {
		switch {
		case ForeignKeyError(err, "blogs_owner_id_fkey"):
			return ErrUserForeignKey
		case invalidTextError(err):
			return ErrMalformedID
		default:
			return err
		}
	}

	return nil
}

func (m *BlogModel) AddBlogToUser(ctx context.Context, userID, blogID string) error {
	query := `
		UPDATE users
		SET blogs = array_append(blogs, $1::uuid)
		WHERE id = $2`

	res, err := m.db.ExecContext(ctx, query, blogID, userID)
	if err != nil {
		return err
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return ErrRecordNotFound
	}

	return nil
}

func (m *BlogModel) UpdateBlogLikes(ctx context.Context, id string, likes int) error {
	query := `
		UPDATE blogs
		SET likes = $1
		WHERE id = $2`

	res, err := m.db.ExecContext(ctx, query, likes, id)
	if err != nil {
		switch {
		case invalidTextError(err):
			return ErrMalformedID
		default:
			return err
		}
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return ErrRecordNotFound
	}

	return nil
}

// DeleteBlog removes the blog. Deleting a missing blog is not an error.
func (m *BlogModel) DeleteBlog(ctx context.Context, id string) error {
	query := `
		DELETE FROM blogs
		WHERE id = $1`

	_, err := m.db.ExecContext(ctx, query, id)
	if err != nil {
		switch {
		case invalidTextError(err):
			return ErrMalformedID
		default:
			return err
		}
	}

	return nil
}

package userservice

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"
)

var (
	ErrDuplicateUsername = errors.New("duplicate username")
	ErrNotFound          = errors.New("user not found")
)

// UserModel is the postgres backed Store.
type UserModel struct {
	db *sql.DB
}

var _ Store = (*UserModel)(nil)

func NewUserModel(db *sql.DB) *UserModel {
	return &UserModel{db: db}
}

func (m *UserModel) InsertUser(ctx context.Context, u *User) error {
	query := `
		INSERT INTO users (name, username, password_hash)
		VALUES ($1, $2, $3)
		RETURNING id, blogs`

	args := []any{
		u.Name,
		u.Username,
		u.PasswordHash,
	}

	err := m.db.QueryRowContext(ctx, query, args...).Scan(&u.ID, pq.Array(&u.Blogs))
	if err != nil {
		var pqErr *pq.Error
		switch {
		case errors.As(err, &pqErr) && pqErr.Code == "23505" && pqErr.Constraint == "users_username_key":
			return ErrDuplicateUsername
		default:
			return err
		}
	}

	if u.Blogs == nil {
		u.Blogs = []string{}
	}

	return nil
}

func (m *UserModel) GetUsers(ctx context.Context) ([]User, error) {
	query := `
		SELECT id, name, username, blogs
		FROM users
		ORDER BY created_at, id`

	rows, err := m.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := []User{}

	for rows.Next() {
		var u User
		err := rows.Scan(&u.ID, &u.Name, &u.Username, pq.Array(&u.Blogs))
		if err != nil {
			return nil, err
		}

		if u.Blogs == nil {
			u.Blogs = []string{}
		}

		users = append(users, u)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return users, nil
}

func (m *UserModel) GetUserByID(ctx context.Context, id string) (*User, error) {
	query := `
		SELECT id, name, username, password_hash, blogs
		FROM users
		WHERE id = $1`

	return m.getUser(ctx, query, id)
}

func (m *UserModel) GetUserByUsername(ctx context.Context, username string) (*User, error) {
	query := `
		SELECT id, name, username, password_hash, blogs
		FROM users
		WHERE username = $1`

	return m.getUser(ctx, query, username)
}

func (m *UserModel) getUser(ctx context.Context, query string, arg any) (*User, error) {
	var u User

	err := m.db.QueryRowContext(ctx, query, arg).Scan(&u.ID, &u.Name, &u.Username, &u.PasswordHash, pq.Array(&u.Blogs))
	if err != nil {
		var pqErr *pq.Error
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, ErrNotFound
		// invalid_text_representation: the id is not a uuid
		case errors.As(err, &pqErr) && pqErr.Code == "22P02":
			return nil, ErrNotFound
		default:
			return nil, err
		}
	}

	if u.Blogs == nil {
		u.Blogs = []string{}
	}

	return &u, nil
}

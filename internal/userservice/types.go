package userservice

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/sushihentaime/bloglist/internal/common"
)

const (
	// TokenTTL is how long a token issued by LoginUser stays valid.
	TokenTTL time.Duration = time.Hour

	DefaultBcryptCost = 10
)

// Store is the persistence the user service needs. Implementations return
// ErrNotFound for missing records and ErrDuplicateUsername on a taken username.
type Store interface {
	GetUsers(ctx context.Context) ([]User, error)
	GetUserByID(ctx context.Context, id string) (*User, error)
	GetUserByUsername(ctx context.Context, username string) (*User, error)
	InsertUser(ctx context.Context, u *User) error
}

type UserService struct {
	m      Store
	hasher PasswordHasher
	tokens TokenService
	mb     common.MessageProducer
	logger *slog.Logger

	// decoy is the hash that logins with an unknown username are checked against.
	decoyOnce sync.Once
	decoy     []byte
}

type User struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Username     string   `json:"username"`
	PasswordHash []byte   `json:"-"`
	Blogs        []string `json:"blogs"`
}

// LoginResult is returned to the client after a successful login.
type LoginResult struct {
	Token    string `json:"token"`
	Username string `json:"username"`
	Name     string `json:"name"`
}

// Claims is what a verified token says about its holder.
type Claims struct {
	ID        string
	Username  string
	ExpiresAt time.Time
}

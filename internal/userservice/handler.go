package userservice

import (
	"context"
	"errors"
	"log/slog"

	"github.com/sushihentaime/bloglist/internal/common"
)

func NewUserService(store Store, hasher PasswordHasher, tokens TokenService, mb common.MessageProducer, logger *slog.Logger) *UserService {
	if mb == nil {
		mb = common.NopProducer{}
	}

	return &UserService{
		m:      store,
		hasher: hasher,
		tokens: tokens,
		mb:     mb,
		logger: logger,
	}
}

// GetUsers returns every user with the ids of the blogs they own.
func (s *UserService) GetUsers(ctx context.Context) ([]User, error) {
	return s.m.GetUsers(ctx)
}

func (s *UserService) GetUserByID(ctx context.Context, id string) (*User, error) {
	id, err := common.ParseID(id)
	if err != nil {
		return nil, err
	}

	u, err := s.m.GetUserByID(ctx, id)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			return nil, common.NewNotFoundError("User")
		default:
			return nil, err
		}
	}

	return u, nil
}

// CreateUser validates and stores a new user and publishes a user.created event.
func (s *UserService) CreateUser(ctx context.Context, name, username, password string) (*User, error) {
	// Password first so a missing password is reported before anything else.
	v := common.NewValidator()
	validatePassword(v, password)
	validateUsername(v, username)
	validateName(v, name)
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, err
	}

	u := User{
		Name:         name,
		Username:     username,
		PasswordHash: hash,
		Blogs:        []string{},
	}

	err = s.m.InsertUser(ctx, &u)
	if err != nil {
		switch {
		case errors.Is(err, ErrDuplicateUsername):
			return nil, common.NewUniquenessError("username")
		default:
			return nil, err
		}
	}

	s.publish(ctx, common.UserCreatedKey, userEvent{ID: u.ID, Username: u.Username})

	return &u, nil
}

// LoginUser checks the credentials and issues a signed token. Unknown
// usernames and wrong passwords fail the same way.
func (s *UserService) LoginUser(ctx context.Context, username, password string) (*LoginResult, error) {
	u, err := s.m.GetUserByUsername(ctx, username)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			s.hasher.Compare(s.decoyHash(), password)
			return nil, common.NewInvalidCredentialsError()
		default:
			return nil, err
		}
	}

	ok, err := s.hasher.Compare(u.PasswordHash, password)
	if err != nil {
		return nil, err
	}

	if !ok {
		return nil, common.NewInvalidCredentialsError()
	}

	token, err := s.tokens.GenerateToken(ctx, u)
	if err != nil {
		return nil, err
	}

	return &LoginResult{
		Token:    token,
		Username: u.Username,
		Name:     u.Name,
	}, nil
}

// Authenticate resolves a bearer token to the user it was issued for.
func (s *UserService) Authenticate(ctx context.Context, token string) (*User, error) {
	claims, err := s.tokens.VerifyToken(ctx, token)
	if err != nil {
		switch {
		case errors.Is(err, ErrTokenMalformed):
			return nil, common.NewInvalidTokenError("jwt malformed")
		case errors.Is(err, ErrTokenExpired):
			return nil, common.NewInvalidTokenError("Token expired")
		case errors.Is(err, ErrTokenSignatureInvalid):
			return nil, common.NewInvalidTokenError("invalid signature")
		case errors.Is(err, ErrTokenMissingSubject), errors.Is(err, ErrTokenInvalid):
			return nil, common.NewInvalidTokenError("Invalid token")
		default:
			return nil, err
		}
	}

	id, err := common.ParseID(claims.ID)
	if err != nil {
		return nil, common.NewUnknownUserError()
	}

	u, err := s.m.GetUserByID(ctx, id)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			return nil, common.NewUnknownUserError()
		default:
			return nil, err
		}
	}

	return u, nil
}

func (s *UserService) decoyHash() []byte {
	s.decoyOnce.Do(func() {
		hash, err := s.hasher.Hash("decoy password")
		if err != nil {
			s.logger.Error("could not hash decoy password", "error", err)
			return
		}
		s.decoy = hash
	})
	return s.decoy
}

type userEvent struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

func (s *UserService) publish(ctx context.Context, key common.BindingKey, event any) {
	if err := common.PublishJSON(ctx, s.mb, key, event); err != nil {
		s.logger.Error("could not publish event", "key", key, "error", err)
	}
}

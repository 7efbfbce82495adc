package userservice

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/sushihentaime/bloglist/internal/common"
	"golang.org/x/crypto/bcrypt"
)

const testUserID = "6c9f2b4e-1d7a-4f0b-8e3c-5a2d9b7e1f04"

func setupTestService(t *testing.T) (*UserService, *MockStore, *MockMessageProducer) {
	store := new(MockStore)
	mb := new(MockMessageProducer)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	s := NewUserService(store, NewBcryptHasher(bcrypt.MinCost), NewJWTService(testSecret, TokenTTL), mb, logger)

	t.Cleanup(func() {
		store.AssertExpectations(t)
		mb.AssertExpectations(t)
	})

	return s, store, mb
}

func TestCreateUser(t *testing.T) {
	testCases := []struct {
		name        string
		fullName    string
		username    string
		password    string
		expectedErr string
	}{
		{name: "missing everything", expectedErr: "Password required"},
		{name: "missing password", fullName: "Root", username: "root", expectedErr: "Password required"},
		{name: "missing username", fullName: "Root", password: "sekret", expectedErr: "Username required"},
		{name: "missing name", username: "root", password: "sekret", expectedErr: "Name required"},
		{name: "password longer than bcrypt accepts", fullName: "Root", username: "root", password: strings.Repeat("a", 80), expectedErr: "Password must not be more than 72 bytes"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			s, _, _ := setupTestService(t)

			u, err := s.CreateUser(context.Background(), tc.fullName, tc.username, tc.password)
			assert.Nil(t, u)

			e, ok := common.AsError(err)
			require.True(t, ok)
			assert.Equal(t, common.KindValidation, e.Kind)
			assert.Equal(t, tc.expectedErr, e.Message)
		})
	}
}

func TestCreateUserStoresHashAndPublishes(t *testing.T) {
	s, store, mb := setupTestService(t)

	store.On("InsertUser", mock.Anything, mock.MatchedBy(func(u *User) bool {
		return u.Username == "root" && u.Name == "Superuser" && string(u.PasswordHash) != "sekret"
	})).Run(func(args mock.Arguments) {
		args.Get(1).(*User).ID = testUserID
	}).Return(nil)
	mb.On("Publish", mock.Anything, mock.Anything, common.UserCreatedKey, common.EventExchange).Return(nil)

	u, err := s.CreateUser(context.Background(), "Superuser", "root", "sekret")
	require.NoError(t, err)
	assert.Equal(t, testUserID, u.ID)
	assert.Equal(t, []string{}, u.Blogs)

	ok, err := s.hasher.Compare(u.PasswordHash, "sekret")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestCreateUserPublishFailureIsNotFatal(t *testing.T) {
	s, store, mb := setupTestService(t)

	store.On("InsertUser", mock.Anything, mock.Anything).Return(nil)
	mb.On("Publish", mock.Anything, mock.Anything, common.UserCreatedKey, common.EventExchange).Return(errors.New("broker down"))

	u, err := s.CreateUser(context.Background(), "Superuser", "root", "sekret")
	assert.NoError(t, err)
	assert.NotNil(t, u)
}

func TestCreateUserDuplicateUsername(t *testing.T) {
	s, store, _ := setupTestService(t)

	store.On("InsertUser", mock.Anything, mock.Anything).Return(ErrDuplicateUsername)

	_, err := s.CreateUser(context.Background(), "Superuser", "root", "sekret")

	e, ok := common.AsError(err)
	require.True(t, ok)
	assert.Equal(t, common.KindUniqueness, e.Kind)
	assert.Equal(t, "expected `username` to be unique", e.Message)
}

func TestGetUserByID(t *testing.T) {
	testCases := []struct {
		name         string
		id           string
		storeErr     error
		expectedKind common.ErrorKind
	}{
		{name: "malformed id", id: "123", expectedKind: common.KindMalformedID},
		{name: "missing user", id: testUserID, storeErr: ErrNotFound, expectedKind: common.KindNotFound},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			s, store, _ := setupTestService(t)

			if tc.storeErr != nil {
				store.On("GetUserByID", mock.Anything, tc.id).Return(nil, tc.storeErr)
			}

			u, err := s.GetUserByID(context.Background(), tc.id)
			assert.Nil(t, u)
			assert.True(t, common.IsKind(err, tc.expectedKind))
		})
	}

	t.Run("found", func(t *testing.T) {
		s, store, _ := setupTestService(t)
		store.On("GetUserByID", mock.Anything, testUserID).Return(&User{ID: testUserID, Username: "root"}, nil)

		u, err := s.GetUserByID(context.Background(), testUserID)
		require.NoError(t, err)
		assert.Equal(t, "root", u.Username)
	})
}

type countingHasher struct {
	PasswordHasher
	hashes   int
	compares int
}

func (h *countingHasher) Hash(password string) ([]byte, error) {
	h.hashes++
	return h.PasswordHasher.Hash(password)
}

func (h *countingHasher) Compare(hash []byte, password string) (bool, error) {
	h.compares++
	return h.PasswordHasher.Compare(hash, password)
}

func TestLoginUser(t *testing.T) {
	hasher := NewBcryptHasher(bcrypt.MinCost)
	hash, err := hasher.Hash("sekret")
	require.NoError(t, err)

	stored := &User{ID: testUserID, Name: "Superuser", Username: "root", PasswordHash: hash}

	t.Run("valid credentials", func(t *testing.T) {
		s, store, _ := setupTestService(t)
		store.On("GetUserByUsername", mock.Anything, "root").Return(stored, nil)

		res, err := s.LoginUser(context.Background(), "root", "sekret")
		require.NoError(t, err)
		assert.Equal(t, "root", res.Username)
		assert.Equal(t, "Superuser", res.Name)

		claims, err := s.tokens.VerifyToken(context.Background(), res.Token)
		require.NoError(t, err)
		assert.Equal(t, testUserID, claims.ID)
		assert.Equal(t, "root", claims.Username)
		assert.WithinDuration(t, time.Now().Add(TokenTTL), claims.ExpiresAt, 5*time.Second)
	})

	t.Run("wrong password", func(t *testing.T) {
		s, store, _ := setupTestService(t)
		store.On("GetUserByUsername", mock.Anything, "root").Return(stored, nil)

		res, err := s.LoginUser(context.Background(), "root", "wrong")
		assert.Nil(t, res)
		assert.True(t, common.IsKind(err, common.KindInvalidCredentials))
	})

	t.Run("unknown username", func(t *testing.T) {
		s, store, _ := setupTestService(t)
		hasher := &countingHasher{PasswordHasher: s.hasher}
		s.hasher = hasher
		store.On("GetUserByUsername", mock.Anything, "ghost").Return(nil, ErrNotFound)

		res, err := s.LoginUser(context.Background(), "ghost", "sekret")
		assert.Nil(t, res)
		assert.True(t, common.IsKind(err, common.KindInvalidCredentials))
		assert.Equal(t, 1, hasher.compares)

		_, err = s.LoginUser(context.Background(), "ghost", "sekret")
		assert.True(t, common.IsKind(err, common.KindInvalidCredentials))
		assert.Equal(t, 2, hasher.compares)
		assert.Equal(t, 1, hasher.hashes)
	})
}

func TestAuthenticate(t *testing.T) {
	ctx := context.Background()
	u := &User{ID: testUserID, Username: "root"}

	t.Run("valid token", func(t *testing.T) {
		s, store, _ := setupTestService(t)
		store.On("GetUserByID", mock.Anything, testUserID).Return(u, nil)

		token, err := s.tokens.GenerateToken(ctx, u)
		require.NoError(t, err)

		got, err := s.Authenticate(ctx, token)
		require.NoError(t, err)
		assert.Equal(t, u, got)
	})

	t.Run("deleted user", func(t *testing.T) {
		s, store, _ := setupTestService(t)
		store.On("GetUserByID", mock.Anything, testUserID).Return(nil, ErrNotFound)

		token, err := s.tokens.GenerateToken(ctx, u)
		require.NoError(t, err)

		_, err = s.Authenticate(ctx, token)
		assert.True(t, common.IsKind(err, common.KindUnknownUser))
	})

	t.Run("subject is not an id", func(t *testing.T) {
		s, _, _ := setupTestService(t)

		token, err := s.tokens.GenerateToken(ctx, &User{ID: "123", Username: "root"})
		require.NoError(t, err)

		_, err = s.Authenticate(ctx, token)
		assert.True(t, common.IsKind(err, common.KindUnknownUser))
	})

	t.Run("malformed token", func(t *testing.T) {
		s, _, _ := setupTestService(t)

		_, err := s.Authenticate(ctx, "garbage")
		e, ok := common.AsError(err)
		require.True(t, ok)
		assert.Equal(t, common.KindInvalidToken, e.Kind)
		assert.Equal(t, "jwt malformed", e.Message)
	})
}

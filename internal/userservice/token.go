package userservice

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrTokenMalformed        = errors.New("jwt malformed")
	ErrTokenExpired          = errors.New("token expired")
	ErrTokenSignatureInvalid = errors.New("invalid signature")
	ErrTokenMissingSubject   = errors.New("token has no subject")
	ErrTokenInvalid          = errors.New("invalid token")
)

// TokenService signs and verifies bearer tokens.
type TokenService interface {
	GenerateToken(ctx context.Context, u *User) (string, error)
	// VerifyToken returns the token claims or one of the ErrToken* errors.
	VerifyToken(ctx context.Context, token string) (*Claims, error)
}

type JWTService struct {
	secret   []byte
	ttl      time.Duration
	timeFunc func() time.Time
}

type jwtClaims struct {
	Username string `json:"username"`
	ID       string `json:"id"`
	jwt.RegisteredClaims
}

var _ TokenService = (*JWTService)(nil)

func NewJWTService(secret string, ttl time.Duration) *JWTService {
	return &JWTService{
		secret:   []byte(secret),
		ttl:      ttl,
		timeFunc: time.Now,
	}
}

func (s *JWTService) GenerateToken(ctx context.Context, u *User) (string, error) {
	now := s.timeFunc()

	claims := jwtClaims{
		Username: u.Username,
		ID:       u.ID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   u.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("could not sign token: %w", err)
	}

	return signed, nil
}

func (s *JWTService) VerifyToken(ctx context.Context, token string) (*Claims, error) {
	var claims jwtClaims

	_, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.timeFunc),
	)
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenMalformed):
			return nil, ErrTokenMalformed
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, ErrTokenExpired
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return nil, ErrTokenSignatureInvalid
		default:
			return nil, fmt.Errorf("%w: %v", ErrTokenInvalid, err)
		}
	}

	id := claims.ID
	if id == "" {
		id = claims.Subject
	}
	if id == "" {
		return nil, ErrTokenMissingSubject
	}

	return &Claims{
		ID:        id,
		Username:  claims.Username,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}

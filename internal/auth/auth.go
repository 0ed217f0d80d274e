package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrInvalidToken is returned when a token fails verification for any
	// reason other than expiry.
	ErrInvalidToken = errors.New("invalid token")
	// ErrExpiredToken is returned when a session token's expiry has passed.
	ErrExpiredToken = errors.New("token expired")
)

// Claims is the authenticated identity attached to a request after the
// middleware has validated a bearer token. Both identity-provider tokens and
// locally issued session tokens resolve to the same shape.
type Claims struct {
	UID   string `json:"uid"`
	Email string `json:"email"`
}

// User is the profile held by the identity provider. This backend never
// persists a copy; it only reads and updates through the provider's API.
type User struct {
	UID           string `json:"uid"`
	Email         string `json:"email"`
	DisplayName   string `json:"displayName"`
	PhotoURL      string `json:"photoURL"`
	EmailVerified bool   `json:"emailVerified"`
}

// UserUpdate carries the profile fields a caller may change. Nil fields are
// left untouched. The field set is the allow-list {email, display_name,
// photo_url, password, disabled}; anything else a client sends is dropped at
// JSON binding, not rejected.
type UserUpdate struct {
	Email       *string
	DisplayName *string
	PhotoURL    *string
	Password    *string
	Disabled    *bool
}

func (u UserUpdate) empty() bool {
	return u.Email == nil && u.DisplayName == nil && u.PhotoURL == nil &&
		u.Password == nil && u.Disabled == nil
}

// IdentityVerifier verifies tokens issued by the external identity provider.
type IdentityVerifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (*Claims, error)
}

// UserDirectory reads and updates user profiles at the identity provider.
type UserDirectory interface {
	GetUser(ctx context.Context, uid string) (*User, error)
	UpdateUser(ctx context.Context, uid string, update UserUpdate) (*User, error)
}

const sessionTokenTTL = 7 * 24 * time.Hour

// Service verifies identity-provider tokens, issues and verifies local
// session tokens, and proxies profile reads/updates.
type Service struct {
	secret   []byte
	ttl      time.Duration
	identity IdentityVerifier
	users    UserDirectory
}

func NewService(secret string, identity IdentityVerifier, users UserDirectory) *Service {
	return &Service{
		secret:   []byte(secret),
		ttl:      sessionTokenTTL,
		identity: identity,
		users:    users,
	}
}

// VerifyIdentityToken checks a token against the identity provider.
func (s *Service) VerifyIdentityToken(ctx context.Context, idToken string) (*Claims, error) {
	return s.identity.VerifyIDToken(ctx, idToken)
}

type sessionClaims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

// CreateSessionToken issues an HS256-signed session token valid for 7 days.
func (s *Service) CreateSessionToken(uid, email string) (string, error) {
	claims := sessionClaims{
		UserID: uid,
		Email:  email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().UTC().Add(s.ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign session token: %w", err)
	}
	return signed, nil
}

// VerifySessionToken validates a locally issued session token.
func (s *Service) VerifySessionToken(tokenStr string) (*Claims, error) {
	var claims sessionClaims
	_, err := jwt.ParseWithClaims(tokenStr, &claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}
	return &Claims{UID: claims.UserID, Email: claims.Email}, nil
}

// GetUserInfo fetches the profile for uid from the identity provider.
func (s *Service) GetUserInfo(ctx context.Context, uid string) (*User, error) {
	return s.users.GetUser(ctx, uid)
}

// UpdateUser applies the non-nil fields of update to the user's profile.
// An empty update is a no-op and returns a nil user.
func (s *Service) UpdateUser(ctx context.Context, uid string, update UserUpdate) (*User, error) {
	if update.empty() {
		return nil, nil
	}
	return s.users.UpdateUser(ctx, uid, update)
}

package services

import (
	"crypto/subtle"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"blog-cms/cmd/api/auth"
)

// AuthService issues admin access tokens for the single configured dashboard
// account.
type AuthService struct {
	jwt          *auth.JWTManager
	username     string
	passwordHash []byte
}

// NewAuthService accepts either a bcrypt hash or a plain password. A plain
// password is hashed once here. An empty password disables login.
func NewAuthService(jwt *auth.JWTManager, username, password string) (*AuthService, error) {
	s := &AuthService{jwt: jwt, username: username}
	switch {
	case password == "":
	case isBcryptHash(password):
		s.passwordHash = []byte(password)
	default:
		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("hash admin password: %w", err)
		}
		s.passwordHash = hash
	}
	return s, nil
}

// Login checks the credentials and returns a signed admin token.
func (s *AuthService) Login(username, password string) (string, time.Time, error) {
	if len(s.passwordHash) == 0 || s.jwt == nil {
		return "", time.Time{}, ErrInvalidCredentials
	}
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(s.username)) == 1
	passErr := bcrypt.CompareHashAndPassword(s.passwordHash, []byte(password))
	if !userOK || passErr != nil {
		return "", time.Time{}, ErrInvalidCredentials
	}

	token, exp, err := s.jwt.Sign(username, auth.RoleAdmin)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}
	return token, exp, nil
}

// ParseAccessToken returns (subject, role) for a token issued by Login.
func (s *AuthService) ParseAccessToken(token string) (string, string, error) {
	if s.jwt == nil {
		return "", "", ErrInvalidCredentials
	}
	return s.jwt.Parse(token)
}

func isBcryptHash(s string) bool {
	return len(s) == 60 && (strings.HasPrefix(s, "$2a$") || strings.HasPrefix(s, "$2b$") || strings.HasPrefix(s, "$2y$"))
}

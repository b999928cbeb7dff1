package services

import (
	"crypto/sha256"
	"crypto/subtle"
	"database/sql"
	"encoding/hex"
	"errors"
	"strings"

	"possystem/internal/domain"
	"possystem/internal/repos"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrEmptyField    = errors.New("fields cannot be empty")
	ErrUserNotFound  = errors.New("no username found")
	ErrWrongPassword = errors.New("password is incorrect")
)

type AuthService struct {
	Users *repos.UserRepo
}

// Authenticate checks username and password against the users table.
// Empty input fails before any query is made.
func (s *AuthService) Authenticate(username, password string) (*domain.User, error) {
	if username == "" || password == "" {
		return nil, ErrEmptyField
	}
	u, err := s.Users.ByUsername(username)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	if !PasswordMatches(u.Hash, password) {
		return nil, ErrWrongPassword
	}
	return u, nil
}

// Digest is the legacy password digest: lowercase hex SHA-256.
func Digest(password string) string {
	sum := sha256.Sum256([]byte(password))
	return hex.EncodeToString(sum[:])
}

// PasswordMatches verifies password against a stored bcrypt hash or a
// legacy SHA-256 digest.
func PasswordMatches(stored, password string) bool {
	if strings.HasPrefix(stored, "$2") {
		return bcrypt.CompareHashAndPassword([]byte(stored), []byte(password)) == nil
	}
	return subtle.ConstantTimeCompare([]byte(strings.ToLower(stored)), []byte(Digest(password))) == 1
}

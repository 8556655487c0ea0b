package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/taskforge/task-tracker/database"
)

// ErrInvalidCredentials is returned for an unknown email and for a hash
// mismatch alike, so a caller cannot probe which emails exist.
var ErrInvalidCredentials = errors.New("invalid credentials")

const bcryptCost = 10

// Compared on the unknown-email path so response time does not reveal
// whether an email is registered. Hash of a throwaway value at
// bcryptCost.
var dummyHash = []byte("$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy")

// AuthService hashes passwords on the way into the store and checks
// submitted credentials against the stored hash on login.
type AuthService struct {
	users     *database.UserStore
	jwtSecret []byte
}

func NewAuthService(users *database.UserStore, jwtSecret string) *AuthService {
	return &AuthService{
		users:     users,
		jwtSecret: []byte(jwtSecret),
	}
}

// HashPassword returns the bcrypt hash stored in place of the password.
func (s *AuthService) HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// Verify checks email and password against the store and returns the
// matching user with the hash stripped. The bcrypt comparison is
// constant time over the hash contents.
func (s *AuthService) Verify(email, password string) (*database.User, error) {
	user, err := s.users.GetByEmail(email)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			// Burn the same bcrypt work a known email would cost
			bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	user.Password = ""
	return user, nil
}

// IssueToken creates the JWT the browser caches as its login marker.
func (s *AuthService) IssueToken(user *database.User) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":   user.ID,
		"email": user.Email,
		"exp":   time.Now().Add(time.Hour * 24 * 7).Unix(),
	})

	signed, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return signed, nil
}

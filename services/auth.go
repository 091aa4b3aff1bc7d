package services

import (
	"errors"
	"strings"

	"github.com/jaylenwa/goblog/models"
	"github.com/jaylenwa/goblog/stores"
	"github.com/jaylenwa/goblog/utils"
)

var (
	// ErrEmailRegistered is returned when registering an email that
	// already has an account.
	ErrEmailRegistered = errors.New("this email has been registered")
	// ErrUnknownEmail is returned when logging in with an email that has
	// no account.
	ErrUnknownEmail = errors.New("this email does not exist")
	// ErrWrongPassword is returned when the password does not match.
	ErrWrongPassword = errors.New("password incorrect")
)

// AuthService registers and authenticates accounts.
type AuthService struct {
	users stores.IdentityStore
}

// NewAuthService creates an AuthService over the given identity store.
func NewAuthService(users stores.IdentityStore) *AuthService {
	return &AuthService{users: users}
}

// Register creates a new account. The new user is not logged in by
// that; the session stays anonymous until an explicit login.
func (s *AuthService) Register(email, password, name string) (uint, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	if _, err := s.users.FindByEmail(email); err == nil {
		return 0, ErrEmailRegistered
	} else if !errors.Is(err, stores.ErrNotFound) {
		return 0, err
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return 0, err
	}

	id, err := s.users.CreateUser(email, hash, name)
	if err != nil {
		// Two concurrent registrations race at the unique index; the
		// loser lands here.
		if errors.Is(err, stores.ErrDuplicateEmail) {
			return 0, ErrEmailRegistered
		}
		return 0, err
	}
	return id, nil
}

// Login verifies credentials and returns the user to establish as the
// session principal.
func (s *AuthService) Login(email, password string) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.users.FindByEmail(email)
	if err != nil {
		if errors.Is(err, stores.ErrNotFound) {
			return nil, ErrUnknownEmail
		}
		return nil, err
	}

	if !utils.VerifyPassword(user.PasswordHash, password) {
		return nil, ErrWrongPassword
	}
	return user, nil
}

package services

import (
	"errors"

	"github.com/jaylenwa/goblog/config"
	"github.com/jaylenwa/goblog/models"
)

var (
	// ErrUnauthenticated marks an action that needs a logged-in session.
	ErrUnauthenticated = errors.New("login required")
	// ErrForbidden marks an admin-only action attempted by anyone else.
	ErrForbidden = errors.New("access denied")
)

// Principal is the identity attached to the current session. The zero
// value is the anonymous principal.
type Principal struct {
	ID    uint
	Email string
	Name  string
}

// Anonymous is the principal of a session with no login.
var Anonymous = Principal{}

// PrincipalFor builds the principal for a resolved user.
func PrincipalFor(user *models.User) Principal {
	return Principal{ID: user.ID, Email: user.Email, Name: user.Name}
}

// Authenticated reports whether the principal belongs to a logged-in
// user.
func (p Principal) Authenticated() bool {
	return p.ID != 0
}

// IsAdmin reports whether the principal is the privileged account.
func (p Principal) IsAdmin() bool {
	return p.Authenticated() && p.ID == config.Get().AdminUserID
}

// RequireAdmin gates post management. Exactly one account may pass: by
// convention the first registered one (id 1) unless overridden in
// configuration. Every other caller, authenticated or not, is rejected.
func RequireAdmin(p Principal) error {
	if !p.IsAdmin() {
		return ErrForbidden
	}
	return nil
}

package domain

import "time"

// Session is a server-side login record mapping an opaque token to a user.
type Session struct {
	ID        string
	UserID    string
	Token     string
	ExpiresAt time.Time
	CreatedAt time.Time
}

// Expired reports whether the session is past its expiry at now.
func (s *Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}

// Identity is the authenticated caller attached to a request.
type Identity struct {
	UserID    string
	Email     string
	Role      Role
	FirstName string
	LastName  string
	// Via records which proof authenticated the request.
	Via AuthMethod
}

// AuthMethod distinguishes stateless tokens from stateful sessions.
type AuthMethod string

const (
	AuthMethodToken   AuthMethod = "token"
	AuthMethodSession AuthMethod = "session"
)

// HasRole reports whether the identity carries role.
func (i *Identity) HasRole(role Role) bool {
	return i != nil && i.Role == role
}

// IdentityFromUser builds an Identity for u.
func IdentityFromUser(u *User, via AuthMethod) *Identity {
	return &Identity{
		UserID:    u.ID,
		Email:     u.Email,
		Role:      u.Role,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Via:       via,
	}
}

package domain

import "time"

// Role gates administrative operations.
type Role string

const (
	RoleCustomer Role = "customer"
	RoleAdmin    Role = "admin"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	return r == RoleCustomer || r == RoleAdmin
}

// User is a storefront account. PasswordHash is empty for accounts
// provisioned without a local password.
type User struct {
	ID              string
	FirstName       string
	LastName        string
	Email           string
	PasswordHash    string
	Role            Role
	ProfileImageURL string
	Phone           string
	Address         string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// HasPassword reports whether the account can log in with a password.
func (u *User) HasPassword() bool {
	return u.PasswordHash != ""
}

// UserProfileUpdate carries optional profile changes; nil fields are left untouched.
type UserProfileUpdate struct {
	FirstName       *string
	LastName        *string
	Phone           *string
	Address         *string
	ProfileImageURL *string
}

// Apply copies the set fields onto u.
func (p UserProfileUpdate) Apply(u *User) {
	if p.FirstName != nil {
		u.FirstName = *p.FirstName
	}
	if p.LastName != nil {
		u.LastName = *p.LastName
	}
	if p.Phone != nil {
		u.Phone = *p.Phone
	}
	if p.Address != nil {
		u.Address = *p.Address
	}
	if p.ProfileImageURL != nil {
		u.ProfileImageURL = *p.ProfileImageURL
	}
}

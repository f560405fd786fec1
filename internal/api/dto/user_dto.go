package dto

import (
	"time"

	"github.com/spec-kit/storefront/internal/domain"
)

// UserRegisterRequest payload for new accounts. A client-supplied role is ignored.
type UserRegisterRequest struct {
	FirstName       string `json:"firstName" validate:"required,max=100"`
	LastName        string `json:"lastName" validate:"required,max=100"`
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required,min=6,max=72"`
	ConfirmPassword string `json:"confirmPassword" validate:"required,eqfield=Password"`
}

// UserLoginRequest payload for login.
type UserLoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// ProfileUpdateRequest is a partial profile change.
type ProfileUpdateRequest struct {
	FirstName       *string `json:"firstName" validate:"omitempty,max=100"`
	LastName        *string `json:"lastName" validate:"omitempty,max=100"`
	Phone           *string `json:"phone" validate:"omitempty,max=32"`
	Address         *string `json:"address" validate:"omitempty,max=500"`
	ProfileImageURL *string `json:"profileImageUrl" validate:"omitempty,url"`
}

// ToDomain converts the request into a profile update.
func (r ProfileUpdateRequest) ToDomain() domain.UserProfileUpdate {
	return domain.UserProfileUpdate{
		FirstName:       r.FirstName,
		LastName:        r.LastName,
		Phone:           r.Phone,
		Address:         r.Address,
		ProfileImageURL: r.ProfileImageURL,
	}
}

// UserSummary is the account shape returned by register and login.
type UserSummary struct {
	ID        string      `json:"id"`
	FirstName string      `json:"firstName"`
	LastName  string      `json:"lastName"`
	Email     string      `json:"email"`
	Role      domain.Role `json:"role"`
}

// UserProfile is the account shape returned by /api/auth/me.
type UserProfile struct {
	UserSummary
	ProfileImageURL string `json:"profileImageUrl"`
	Phone           string `json:"phone"`
	Address         string `json:"address"`
}

// AuthResponse standard response for register and login.
type AuthResponse struct {
	User         UserSummary `json:"user"`
	Token        string      `json:"token"`
	SessionToken string      `json:"sessionToken"`
	ExpiresAt    time.Time   `json:"expiresAt"`
}

// NewUserSummary maps a user.
func NewUserSummary(u *domain.User) UserSummary {
	return UserSummary{ID: u.ID, FirstName: u.FirstName, LastName: u.LastName, Email: u.Email, Role: u.Role}
}

// NewUserProfile maps a user.
func NewUserProfile(u *domain.User) UserProfile {
	return UserProfile{
		UserSummary:     NewUserSummary(u),
		ProfileImageURL: u.ProfileImageURL,
		Phone:           u.Phone,
		Address:         u.Address,
	}
}

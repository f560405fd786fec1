package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/storefront/internal/auth"
	"github.com/spec-kit/storefront/internal/domain"
	"github.com/spec-kit/storefront/internal/events"
	"github.com/spec-kit/storefront/internal/observability"
	"github.com/spec-kit/storefront/internal/repository"
	apperrors "github.com/spec-kit/storefront/pkg/util"
)

// MsgInvalidCredentials is the single login failure message.
const MsgInvalidCredentials = "invalid email or password"

// AuthService coordinates registration, login and profile flows.
type AuthService struct {
	users      repository.UserRepository
	sessions   *auth.SessionManager
	tokens     *auth.TokenManager
	bcryptCost int
	dispatcher events.Dispatcher
	logger     *zap.Logger
	metrics    *observability.Metrics
}

// AuthDependencies encapsulates requirements for the auth service.
type AuthDependencies struct {
	Users      repository.UserRepository
	Sessions   *auth.SessionManager
	Tokens     *auth.TokenManager
	BcryptCost int
	Dispatcher events.Dispatcher
	Logger     *zap.Logger
	Metrics    *observability.Metrics
}

// NewAuthService builds the service.
func NewAuthService(deps AuthDependencies) *AuthService {
	return &AuthService{
		users:      deps.Users,
		sessions:   deps.Sessions,
		tokens:     deps.Tokens,
		bcryptCost: deps.BcryptCost,
		dispatcher: deps.Dispatcher,
		logger:     deps.Logger,
		metrics:    deps.Metrics,
	}
}

// RegisterInput describes a new customer account.
type RegisterInput struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
}

// RequestMeta carries request context for security event logging.
type RequestMeta struct {
	IP        string
	UserAgent string
	Method    string
	Path      string
}

// AuthResult is returned on successful registration or login. Both proofs
// identify the same user and either is accepted as a bearer value.
type AuthResult struct {
	User             *domain.User
	Token            string
	TokenExpiresAt   time.Time
	SessionToken     string
	SessionExpiresAt time.Time
}

// Register creates a customer account and signs it in.
func (s *AuthService) Register(ctx context.Context, input RegisterInput, meta RequestMeta) (*AuthResult, error) {
	email := normalizeEmail(input.Email)

	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		s.securityEvent("REGISTRATION_DUPLICATE", meta, email)
		s.metrics.RecordAuth("register", "conflict")
		return nil, apperrors.NewConflict("user already exists with this email", nil)
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, s.registrationFailed(meta, email, err)
	}

	hash, err := auth.HashPassword(input.Password, s.bcryptCost)
	if err != nil {
		return nil, s.registrationFailed(meta, email, err)
	}

	user := &domain.User{
		FirstName:    strings.TrimSpace(input.FirstName),
		LastName:     strings.TrimSpace(input.LastName),
		Email:        email,
		PasswordHash: hash,
		Role:         domain.RoleCustomer,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrAlreadyExists) {
			s.metrics.RecordAuth("register", "conflict")
			return nil, apperrors.NewConflict("user already exists with this email", nil)
		}
		return nil, s.registrationFailed(meta, email, err)
	}

	result, err := s.signIn(ctx, user)
	if err != nil {
		return nil, s.registrationFailed(meta, email, err)
	}

	s.metrics.RecordAuth("register", "success")
	s.publish(ctx, events.New(events.EventUserRegistered, user.ID, events.Actor{UserID: user.ID, Role: user.Role},
		events.UserRegisteredPayload{Email: user.Email, Role: user.Role}))
	return result, nil
}

// Login verifies credentials. Unknown emails, password-less accounts and
// wrong passwords fail identically.
func (s *AuthService) Login(ctx context.Context, email, password string, meta RequestMeta) (*AuthResult, error) {
	email = normalizeEmail(email)

	user, err := s.users.GetByEmail(ctx, email)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return nil, s.loginRejected(meta, email, "unknown_email")
	case err != nil:
		s.securityEvent("LOGIN_FAILED", meta, email, zap.Error(err))
		s.metrics.RecordAuth("login", "error")
		return nil, err
	case !user.HasPassword():
		return nil, s.loginRejected(meta, email, "no_password")
	case !auth.CheckPassword(password, user.PasswordHash):
		return nil, s.loginRejected(meta, email, "bad_password")
	}

	result, err := s.signIn(ctx, user)
	if err != nil {
		s.securityEvent("LOGIN_FAILED", meta, email, zap.Error(err))
		s.metrics.RecordAuth("login", "error")
		return nil, err
	}
	s.metrics.RecordAuth("login", "success")
	return result, nil
}

// Logout deletes the session whose token equals bearer. A signed-token
// bearer has no session and the call is a no-op.
func (s *AuthService) Logout(ctx context.Context, bearer string) error {
	_, err := s.sessions.Revoke(ctx, bearer)
	return err
}

// Me returns the caller's account.
func (s *AuthService) Me(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, notFoundAs("user", err)
	}
	return user, nil
}

// UpdateProfile applies profile changes to the caller's account.
func (s *AuthService) UpdateProfile(ctx context.Context, userID string, update domain.UserProfileUpdate) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, notFoundAs("user", err)
	}
	update.Apply(user)
	if err := s.users.Update(ctx, user); err != nil {
		return nil, notFoundAs("user", err)
	}
	return user, nil
}

// EnsureAdmin creates an admin account for email when none exists. An
// existing account with that email is promoted to admin.
func (s *AuthService) EnsureAdmin(ctx context.Context, email, password string) error {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return nil
	}

	existing, err := s.users.GetByEmail(ctx, email)
	if err == nil {
		if existing.Role == domain.RoleAdmin {
			return nil
		}
		existing.Role = domain.RoleAdmin
		if err := s.users.Update(ctx, existing); err != nil {
			return err
		}
		s.logger.Info("promoted bootstrap admin", zap.String("user_id", existing.ID))
		return nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return err
	}

	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return err
	}
	admin := &domain.User{
		FirstName:    "Store",
		LastName:     "Admin",
		Email:        email,
		PasswordHash: hash,
		Role:         domain.RoleAdmin,
	}
	if err := s.users.Create(ctx, admin); err != nil {
		return err
	}
	s.logger.Info("created bootstrap admin", zap.String("user_id", admin.ID))
	return nil
}

func (s *AuthService) signIn(ctx context.Context, user *domain.User) (*AuthResult, error) {
	token, tokenExp, err := s.tokens.GenerateToken(user.ID, user.Email, user.Role)
	if err != nil {
		return nil, err
	}
	session, err := s.sessions.Issue(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	return &AuthResult{
		User:             user,
		Token:            token,
		TokenExpiresAt:   tokenExp,
		SessionToken:     session.Token,
		SessionExpiresAt: session.ExpiresAt,
	}, nil
}

func (s *AuthService) loginRejected(meta RequestMeta, email, reason string) error {
	s.securityEvent("LOGIN_FAILED", meta, email, zap.String("reason", reason))
	s.metrics.RecordAuth("login", "rejected")
	return apperrors.NewUnauthorized(MsgInvalidCredentials)
}

func (s *AuthService) registrationFailed(meta RequestMeta, email string, err error) error {
	s.securityEvent("REGISTRATION_FAILED", meta, email, zap.Error(err))
	s.metrics.RecordAuth("register", "error")
	return err
}

func (s *AuthService) securityEvent(event string, meta RequestMeta, email string, extra ...zap.Field) {
	fields := append([]zap.Field{
		zap.String("event", event),
		zap.String("ip", meta.IP),
		zap.String("user_agent", meta.UserAgent),
		zap.String("method", meta.Method),
		zap.String("path", meta.Path),
		zap.String("email", email),
	}, extra...)
	s.logger.Warn("security event", fields...)
}

func (s *AuthService) publish(ctx context.Context, event events.Event) {
	publishEvent(ctx, s.dispatcher, s.logger, event)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

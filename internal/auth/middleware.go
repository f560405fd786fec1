package auth

import (
	"context"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/storefront/internal/domain"
	"github.com/spec-kit/storefront/internal/repository"
	apperrors "github.com/spec-kit/storefront/pkg/util"
)

const identityKey = "auth_identity"

const (
	MsgTokenRequired = "access token required"
	MsgTokenInvalid  = "invalid or expired token"
)

// ErrNoCredentials means the request carried no bearer value.
var ErrNoCredentials = errors.New("no bearer credentials")

// Authenticator resolves bearer values into identities. A bearer is tried as
// a signed token first, then as a session token.
type Authenticator struct {
	tokens   *TokenManager
	sessions *SessionManager
	users    repository.UserRepository
	logger   *zap.Logger
}

// NewAuthenticator constructs middleware.
func NewAuthenticator(tokens *TokenManager, sessions *SessionManager, users repository.UserRepository, logger *zap.Logger) *Authenticator {
	return &Authenticator{tokens: tokens, sessions: sessions, users: users, logger: logger}
}

// Resolve maps a bearer value to an identity.
func (a *Authenticator) Resolve(ctx context.Context, bearer string) (*domain.Identity, error) {
	if bearer == "" {
		return nil, ErrNoCredentials
	}

	if claims, err := a.tokens.ParseToken(bearer); err == nil {
		user, err := a.users.GetByID(ctx, claims.Subject)
		if err == nil {
			return domain.IdentityFromUser(user, domain.AuthMethodToken), nil
		}
		if !errors.Is(err, repository.ErrNotFound) {
			return nil, err
		}
	}

	session, err := a.sessions.Resolve(ctx, bearer)
	if err != nil {
		return nil, err
	}
	user, err := a.users.GetByID(ctx, session.UserID)
	if err != nil {
		return nil, err
	}
	return domain.IdentityFromUser(user, domain.AuthMethodSession), nil
}

// Handle enforces authentication for protected routes.
func (a *Authenticator) Handle(c *fiber.Ctx) error {
	bearer := BearerToken(c)
	if bearer == "" {
		return apperrors.NewUnauthorized(MsgTokenRequired)
	}

	identity, err := a.Resolve(c.UserContext(), bearer)
	if err != nil {
		if !errors.Is(err, ErrSessionNotFound) && !errors.Is(err, repository.ErrNotFound) {
			a.logger.Warn("authentication lookup failed", zap.Error(err), zap.String("path", c.Path()))
		}
		return apperrors.NewUnauthorized(MsgTokenInvalid)
	}

	c.Locals(identityKey, identity)
	return c.Next()
}

// Optional attaches an identity when the bearer resolves and otherwise
// lets the request through as a guest.
func (a *Authenticator) Optional(c *fiber.Ctx) error {
	bearer := BearerToken(c)
	if bearer == "" {
		return c.Next()
	}
	identity, err := a.Resolve(c.UserContext(), bearer)
	if err != nil {
		a.logger.Debug("optional auth ignored invalid bearer", zap.Error(err), zap.String("path", c.Path()))
		return c.Next()
	}
	c.Locals(identityKey, identity)
	return c.Next()
}

// BearerToken extracts the value of an "Authorization: Bearer" header.
func BearerToken(c *fiber.Ctx) string {
	header := strings.TrimSpace(c.Get(fiber.HeaderAuthorization))
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

// IdentityFromContext retrieves the authenticated caller.
func IdentityFromContext(c *fiber.Ctx) (*domain.Identity, bool) {
	val := c.Locals(identityKey)
	if val == nil {
		return nil, false
	}
	identity, ok := val.(*domain.Identity)
	return identity, ok
}

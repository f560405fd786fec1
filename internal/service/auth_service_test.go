package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/storefront/internal/domain"
	apperrors "github.com/spec-kit/storefront/pkg/util"
)

var testMeta = RequestMeta{IP: "10.0.0.1", UserAgent: "test", Method: "POST", Path: "/api/auth/login"}

func TestRegister_CreatesCustomerAndBothProofs(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	res, err := env.auth.Register(ctx, RegisterInput{
		FirstName: "Rina", LastName: "Das", Email: " Rina@Example.com ", Password: "secret123",
	}, testMeta)
	require.NoError(t, err)

	assert.Equal(t, "rina@example.com", res.User.Email)
	assert.Equal(t, domain.RoleCustomer, res.User.Role)
	assert.NotEqual(t, "secret123", res.User.PasswordHash)

	claims, err := env.tokens.ParseToken(res.Token)
	require.NoError(t, err)
	assert.Equal(t, res.User.ID, claims.Subject)

	session, err := env.sessions.Resolve(ctx, res.SessionToken)
	require.NoError(t, err)
	assert.Equal(t, res.User.ID, session.UserID)
}

func TestRegister_DuplicateEmailConflicts(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	input := RegisterInput{FirstName: "A", LastName: "B", Email: "dup@example.com", Password: "secret123"}

	_, err := env.auth.Register(ctx, input, testMeta)
	require.NoError(t, err)

	input.Email = "DUP@example.com"
	_, err = env.auth.Register(ctx, input, testMeta)
	assert.True(t, apperrors.IsCode(err, "CONFLICT"))
}

func TestLogin_UniformFailure(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.auth.Register(ctx, RegisterInput{FirstName: "A", LastName: "B", Email: "a@example.com", Password: "secret123"}, testMeta)
	require.NoError(t, err)
	require.NoError(t, env.store.Users.Create(ctx, &domain.User{Email: "nopass@example.com", Role: domain.RoleCustomer}))

	for name, creds := range map[string][2]string{
		"wrong password": {"a@example.com", "nope"},
		"unknown email":  {"ghost@example.com", "secret123"},
		"no password":    {"nopass@example.com", ""},
	} {
		t.Run(name, func(t *testing.T) {
			_, err := env.auth.Login(ctx, creds[0], creds[1], testMeta)
			de := apperrors.ToDomainError(err)
			require.NotNil(t, de)
			assert.Equal(t, "UNAUTHORIZED", de.Code)
			assert.Equal(t, MsgInvalidCredentials, de.Message)
		})
	}

	events := env.logs.FilterMessage("security event").All()
	require.Len(t, events, 3)
	for _, entry := range events {
		ctxMap := entry.ContextMap()
		assert.Equal(t, "LOGIN_FAILED", ctxMap["event"])
		assert.Equal(t, "10.0.0.1", ctxMap["ip"])
		assert.NotContains(t, ctxMap, "password")
	}
}

func TestLogin_SucceedsAndLogoutRevokesSession(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.auth.Register(ctx, RegisterInput{FirstName: "A", LastName: "B", Email: "a@example.com", Password: "secret123"}, testMeta)
	require.NoError(t, err)

	res, err := env.auth.Login(ctx, "A@example.com", "secret123", testMeta)
	require.NoError(t, err)

	require.NoError(t, env.auth.Logout(ctx, res.SessionToken))
	_, err = env.sessions.Resolve(ctx, res.SessionToken)
	assert.Error(t, err)

	require.NoError(t, env.auth.Logout(ctx, res.Token), "logout with a signed token is a no-op")
}

func TestUpdateProfile(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	res, err := env.auth.Register(ctx, RegisterInput{FirstName: "A", LastName: "B", Email: "a@example.com", Password: "secret123"}, testMeta)
	require.NoError(t, err)

	phone := "+8801712345678"
	updated, err := env.auth.UpdateProfile(ctx, res.User.ID, domain.UserProfileUpdate{Phone: &phone})
	require.NoError(t, err)
	assert.Equal(t, phone, updated.Phone)
	assert.Equal(t, "A", updated.FirstName)

	_, err = env.auth.Me(ctx, "missing")
	assert.True(t, apperrors.IsCode(err, "NOT_FOUND"))
}

func TestEnsureAdmin(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	require.NoError(t, env.auth.EnsureAdmin(ctx, "admin@example.com", "adminpass"))
	require.NoError(t, env.auth.EnsureAdmin(ctx, "admin@example.com", "adminpass"))

	res, err := env.auth.Login(ctx, "admin@example.com", "adminpass", testMeta)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleAdmin, res.User.Role)

	_, err = env.auth.Register(ctx, RegisterInput{FirstName: "C", LastName: "D", Email: "c@example.com", Password: "secret123"}, testMeta)
	require.NoError(t, err)
	require.NoError(t, env.auth.EnsureAdmin(ctx, "c@example.com", "ignored"))
	promoted, err := env.store.Users.GetByEmail(ctx, "c@example.com")
	require.NoError(t, err)
	assert.Equal(t, domain.RoleAdmin, promoted.Role)
}

package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"golang.org/x/crypto/bcrypt"

	"github.com/spec-kit/storefront/internal/auth"
	"github.com/spec-kit/storefront/internal/config"
	"github.com/spec-kit/storefront/internal/domain"
	"github.com/spec-kit/storefront/internal/events"
	"github.com/spec-kit/storefront/internal/repository"
	"github.com/spec-kit/storefront/internal/repository/memory"
	"github.com/spec-kit/storefront/internal/verification"
)

type testEnv struct {
	store      *repository.Store
	dispatcher events.Dispatcher
	logger     *zap.Logger
	logs       *observer.ObservedLogs
	tokens     *auth.TokenManager
	sessions   *auth.SessionManager
	codes      *verification.MemoryStore
	verifier   *verification.Service
	auth       *AuthService
	orders     *OrderService
	contacts   *ContactService
	newsletter *NewsletterService
	neem       *domain.Product
	turmeric   *domain.Product
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	core, logs := observer.New(zapcore.DebugLevel)
	logger := zap.New(core)
	store := memory.NewStore()
	neem := &domain.Product{Name: "Neem Soap", Price: 280, Category: "soaps", InStock: true}
	turmeric := &domain.Product{Name: "Turmeric Soap", Price: 320, Category: "soaps", InStock: true}
	require.NoError(t, store.Products.Create(context.Background(), neem))
	require.NoError(t, store.Products.Create(context.Background(), turmeric))
	dispatcher := events.NewInMemoryDispatcher()
	NewNotificationService(dispatcher, logger, config.NotificationConfig{AlertEmail: "ops@example.com"}).RegisterHandlers()

	tokens := auth.NewTokenManager("test-secret", time.Hour)
	sessions := auth.NewSessionManager(store.Sessions, time.Hour)
	codes := verification.NewMemoryStore()
	verifier := verification.NewService(codes, verification.NewLogNotifier(logger, "MRIDULOTA", 10*time.Minute), 10*time.Minute, logger)

	return &testEnv{
		store:      store,
		dispatcher: dispatcher,
		logger:     logger,
		logs:       logs,
		tokens:     tokens,
		sessions:   sessions,
		codes:      codes,
		verifier:   verifier,
		auth: NewAuthService(AuthDependencies{
			Users:      store.Users,
			Sessions:   sessions,
			Tokens:     tokens,
			BcryptCost: bcrypt.MinCost,
			Dispatcher: dispatcher,
			Logger:     logger,
		}),
		orders: NewOrderService(OrderDependencies{
			Orders:     store.Orders,
			Products:   store.Products,
			Verifier:   verifier,
			Dispatcher: dispatcher,
			Logger:     logger,
		}),
		contacts:   NewContactService(store.Contacts, dispatcher, logger),
		newsletter: NewNewsletterService(store.Newsletter, dispatcher, logger),
		neem:       neem,
		turmeric:   turmeric,
	}
}

func (e *testEnv) codeFor(t *testing.T, phone string) string {
	t.Helper()
	record, err := e.codes.Get(context.Background(), phone)
	require.NoError(t, err)
	return record.Code
}

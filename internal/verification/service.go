// Package verification confirms cash-on-delivery orders by sending a short
// numeric code to the customer's phone and checking it on submission.
package verification

import (
	"context"
	"crypto/rand"
	"errors"
	"math/big"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/storefront/internal/observability"
)

// Outcome messages returned to callers.
const (
	MsgNotFound       = "Verification code not found or expired"
	MsgOrderMismatch  = "Invalid verification request"
	MsgExpired        = "Verification code has expired"
	MsgCodeMismatch   = "Invalid verification code"
	MsgVerified       = "Phone verified successfully"
	MsgResent         = "Verification code resent successfully"
	MsgCannotResend   = "Cannot resend verification code"
	DefaultCodeTTL    = 10 * time.Minute
	codeMin, codeSpan = 100000, 900000
)

// Result is the outcome of a verify or resend call.
type Result struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// Status describes the record for a phone as seen from one order.
type Status struct {
	Exists    bool       `json:"exists"`
	Verified  bool       `json:"verified"`
	ExpiresAt *time.Time `json:"expiresAt,omitempty"`
}

// Service issues and checks delivery verification codes.
type Service struct {
	store    CodeStore
	notifier Notifier
	ttl      time.Duration
	logger   *zap.Logger
	metrics  *observability.Metrics
	now      func() time.Time
	newCode  func() (string, error)
}

// Option customises a Service.
type Option func(*Service)

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithMetrics records outcomes on m.
func WithMetrics(m *observability.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

// WithCodeGenerator overrides random code generation.
func WithCodeGenerator(gen func() (string, error)) Option {
	return func(s *Service) { s.newCode = gen }
}

// NewService wires a Service. A non-positive ttl falls back to ten minutes.
func NewService(store CodeStore, notifier Notifier, ttl time.Duration, logger *zap.Logger, opts ...Option) *Service {
	if ttl <= 0 {
		ttl = DefaultCodeTTL
	}
	s := &Service{
		store:    store,
		notifier: notifier,
		ttl:      ttl,
		logger:   logger,
		now:      time.Now,
		newCode:  randomCode,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Generate issues a fresh code for phone bound to orderID, replacing any
// existing record for phone, and hands it to the notifier. A notifier
// failure is logged and does not undo issuance.
func (s *Service) Generate(ctx context.Context, phone, orderID string) (string, error) {
	code, err := s.newCode()
	if err != nil {
		s.metrics.RecordVerification("generate", "error")
		return "", err
	}
	record := Record{
		Code:      code,
		Phone:     phone,
		OrderID:   orderID,
		ExpiresAt: s.now().Add(s.ttl),
	}
	if err := s.store.Set(ctx, record); err != nil {
		s.metrics.RecordVerification("generate", "error")
		return "", err
	}

	s.logger.Info("verification code generated",
		zap.String("phone", MaskPhone(phone)),
		zap.String("order_id", orderID),
		zap.Time("expires_at", record.ExpiresAt),
	)
	s.metrics.RecordVerification("generate", "issued")

	if s.notifier != nil {
		if err := s.notifier.SendCode(ctx, phone, orderID, code); err != nil {
			s.logger.Warn("verification code delivery failed",
				zap.String("phone", MaskPhone(phone)),
				zap.String("order_id", orderID),
				zap.Error(err),
			)
		}
	}
	return code, nil
}

// Verify checks a submitted code. Outcomes are reported in Result; the
// error is reserved for store failures.
func (s *Service) Verify(ctx context.Context, phone, code, orderID string) (Result, error) {
	masked := MaskPhone(phone)
	record, err := s.lookup(ctx, phone)
	if err != nil {
		return Result{}, err
	}
	if record == nil {
		s.logger.Warn("verification code not found", zap.String("phone", masked), zap.String("order_id", orderID))
		return s.fail("not_found", MsgNotFound), nil
	}
	if record.OrderID != orderID {
		s.logger.Warn("verification order mismatch",
			zap.String("phone", masked),
			zap.String("order_id", orderID),
			zap.String("expected_order_id", record.OrderID),
		)
		return s.fail("order_mismatch", MsgOrderMismatch), nil
	}
	if record.Expired(s.now()) {
		s.logger.Warn("verification code expired", zap.String("phone", masked), zap.String("order_id", orderID))
		if err := s.store.Delete(ctx, phone); err != nil {
			return Result{}, err
		}
		return s.fail("expired", MsgExpired), nil
	}
	if record.Code != code {
		s.logger.Warn("invalid verification code", zap.String("phone", masked), zap.String("order_id", orderID))
		return s.fail("code_mismatch", MsgCodeMismatch), nil
	}

	if !record.Verified {
		record.Verified = true
		if err := s.store.Set(ctx, *record); err != nil {
			return Result{}, err
		}
	}
	s.logger.Info("phone verification successful", zap.String("phone", masked), zap.String("order_id", orderID))
	s.metrics.RecordVerification("verify", "success")
	return Result{Success: true, Message: MsgVerified}, nil
}

// IsVerified reports whether phone holds a verified, unexpired record for orderID.
func (s *Service) IsVerified(ctx context.Context, phone, orderID string) (bool, error) {
	record, err := s.lookup(ctx, phone)
	if err != nil || record == nil {
		return false, err
	}
	return record.OrderID == orderID && record.Verified && !record.Expired(s.now()), nil
}

// Resend regenerates the code when the phone's current record belongs to orderID.
func (s *Service) Resend(ctx context.Context, phone, orderID string) (Result, error) {
	record, err := s.lookup(ctx, phone)
	if err != nil {
		return Result{}, err
	}
	if record == nil || record.OrderID != orderID {
		s.logger.Warn("verification resend refused", zap.String("phone", MaskPhone(phone)), zap.String("order_id", orderID))
		s.metrics.RecordVerification("resend", "refused")
		return Result{Success: false, Message: MsgCannotResend}, nil
	}
	if _, err := s.Generate(ctx, phone, orderID); err != nil {
		return Result{}, err
	}
	s.logger.Info("verification code resent", zap.String("phone", MaskPhone(phone)), zap.String("order_id", orderID))
	s.metrics.RecordVerification("resend", "success")
	return Result{Success: true, Message: MsgResent}, nil
}

// Status reports the phone's record when it is bound to orderID.
func (s *Service) Status(ctx context.Context, phone, orderID string) (Status, error) {
	record, err := s.lookup(ctx, phone)
	if err != nil {
		return Status{}, err
	}
	if record == nil || record.OrderID != orderID {
		return Status{}, nil
	}
	expiresAt := record.ExpiresAt
	return Status{Exists: true, Verified: record.Verified, ExpiresAt: &expiresAt}, nil
}

// Sweep purges expired records.
func (s *Service) Sweep(ctx context.Context) (int, error) {
	removed, err := s.store.Sweep(ctx, s.now())
	if err != nil {
		return removed, err
	}
	if removed > 0 {
		s.logger.Info("cleaned up expired verification codes", zap.Int("count", removed))
	}
	s.metrics.RecordSweep("verification_code", removed)
	return removed, nil
}

func (s *Service) lookup(ctx context.Context, phone string) (*Record, error) {
	record, err := s.store.Get(ctx, phone)
	if errors.Is(err, ErrNoRecord) {
		return nil, nil
	}
	return record, err
}

func (s *Service) fail(outcome, message string) Result {
	s.metrics.RecordVerification("verify", outcome)
	return Result{Success: false, Message: message}
}

func randomCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(codeSpan))
	if err != nil {
		return "", err
	}
	return strconv.FormatInt(n.Int64()+codeMin, 10), nil
}

package http

import (
	"context"
	"encoding/json"
	"errors"
	"runtime/debug"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"go.uber.org/zap"

	"github.com/spec-kit/storefront/internal/auth"
	"github.com/spec-kit/storefront/internal/observability"
	"github.com/spec-kit/storefront/internal/verification"
	apperrors "github.com/spec-kit/storefront/pkg/util"
)

// MiddlewareConfig holds the dependencies of the global middleware chain.
type MiddlewareConfig struct {
	Logger  *zap.Logger
	Metrics *observability.Metrics
	Timeout time.Duration
	// ExposeErrors includes internal error text in 5xx responses.
	ExposeErrors bool
}

// NewApp builds a fiber app whose fallback error handler renders the same
// envelope as the error middleware. Values read from the request stay valid
// after the handler returns; services keep order ids and phones beyond it.
func NewApp(name string) *fiber.App {
	return fiber.New(fiber.Config{
		AppName:      name,
		Immutable:    true,
		ErrorHandler: fallbackErrorHandler,
	})
}

// RegisterMiddlewares attaches global middlewares. The request logger wraps
// the error middleware so it observes the final status code.
func RegisterMiddlewares(app *fiber.App, cfg MiddlewareConfig) {
	app.Use(requestid.New())
	app.Use(observability.RequestLogger(cfg.Logger, cfg.Metrics))
	app.Use(errorHandlingMiddleware(cfg))
	app.Use(helmet.New())
	app.Use(compress.New())
	if cfg.Timeout > 0 {
		app.Use(requestTimeoutMiddleware(cfg.Timeout))
	}
}

func requestTimeoutMiddleware(timeout time.Duration) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), timeout)
		defer cancel()
		c.SetUserContext(ctx)
		return c.Next()
	}
}

func errorHandlingMiddleware(cfg MiddlewareConfig) fiber.Handler {
	logger := cfg.Logger
	return func(c *fiber.Ctx) (err error) {
		defer func() {
			if r := recover(); r != nil {
				logger.Error("panic recovered", zap.Any("panic", r), zap.ByteString("stack", debug.Stack()))
				err = apperrors.NewInternalError(nil)
			}
			if err != nil {
				domainErr := toDomainError(err)
				cfg.Metrics.RecordError(c.Route().Path, c.Method(), domainErr.Code)
				if domainErr.HTTPStatus >= 500 {
					logger.Error("request failed",
						zap.Error(domainErr),
						zap.String("method", c.Method()),
						zap.String("path", c.Path()),
						zap.String("user_id", userID(c)),
						zap.Any("body", sanitizeBody(c.Body())),
					)
				}
				writeError(c, domainErr, cfg.ExposeErrors)
				err = nil
			}
		}()
		return c.Next()
	}
}

func fallbackErrorHandler(c *fiber.Ctx, err error) error {
	writeError(c, toDomainError(err), false)
	return nil
}

func writeError(c *fiber.Ctx, domainErr *apperrors.DomainError, expose bool) {
	body := fiber.Map{
		"code":    domainErr.Code,
		"message": domainErr.Message,
	}
	if len(domainErr.Details) > 0 {
		body["details"] = domainErr.Details
	}
	if expose && domainErr.HTTPStatus >= 500 && domainErr.Err != nil {
		body["message"] = domainErr.Error()
	}
	c.Status(domainErr.HTTPStatus)
	_ = c.JSON(fiber.Map{"error": body})
}

// toDomainError also maps fiber's own errors, such as unknown routes.
func toDomainError(err error) *apperrors.DomainError {
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		switch fiberErr.Code {
		case fiber.StatusNotFound:
			return apperrors.NewNotFound("route", nil).(*apperrors.DomainError)
		case fiber.StatusMethodNotAllowed:
			return apperrors.NewDomainError("METHOD_NOT_ALLOWED", fiberErr.Message, fiberErr.Code, nil)
		case fiber.StatusTooManyRequests:
			return apperrors.NewRateLimited(fiberErr.Message).(*apperrors.DomainError)
		case fiber.StatusRequestEntityTooLarge:
			return apperrors.NewDomainError("PAYLOAD_TOO_LARGE", fiberErr.Message, fiberErr.Code, nil)
		}
		if fiberErr.Code >= 400 && fiberErr.Code < 500 {
			return apperrors.NewValidationError(fiberErr.Message, nil).(*apperrors.DomainError)
		}
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return apperrors.NewDomainError("TIMEOUT", "request timed out", fiber.StatusServiceUnavailable, nil)
	}
	return apperrors.ToDomainError(err)
}

func userID(c *fiber.Ctx) string {
	if identity, ok := auth.IdentityFromContext(c); ok {
		return identity.UserID
	}
	return ""
}

// sanitizeBody decodes a JSON body for logging with secrets redacted and
// phone numbers masked. Non-JSON bodies are summarised by size.
func sanitizeBody(raw []byte) any {
	if len(raw) == 0 {
		return nil
	}
	var decoded any
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return fiber.Map{"bytes": len(raw)}
	}
	return sanitizeValue("", decoded)
}

func sanitizeValue(key string, val any) any {
	lower := strings.ToLower(key)
	switch v := val.(type) {
	case map[string]any:
		out := make(map[string]any, len(v))
		for k, inner := range v {
			out[k] = sanitizeValue(k, inner)
		}
		return out
	case []any:
		out := make([]any, len(v))
		for i, inner := range v {
			out[i] = sanitizeValue(key, inner)
		}
		return out
	case string:
		switch {
		case strings.Contains(lower, "password"), strings.Contains(lower, "token"), lower == "code":
			return "[REDACTED]"
		case strings.Contains(lower, "phone"):
			return verification.MaskPhone(v)
		}
		return v
	default:
		return v
	}
}

package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/spec-kit/storefront/internal/events"
	"github.com/spec-kit/storefront/internal/repository"
	apperrors "github.com/spec-kit/storefront/pkg/util"
)

// notFoundAs converts repository misses into a NOT_FOUND domain error for resource.
func notFoundAs(resource string, err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return apperrors.NewNotFound(resource, nil)
	}
	return err
}

func publishEvent(ctx context.Context, dispatcher events.Dispatcher, logger *zap.Logger, event events.Event) {
	if dispatcher == nil {
		return
	}
	if err := dispatcher.Publish(ctx, event); err != nil {
		logger.Warn("event handler failed", zap.String("event_type", string(event.Type)), zap.Error(err))
	}
}

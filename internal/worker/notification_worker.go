package worker

import (
	"context"

	"github.com/spec-kit/storefront/internal/service"
)

// Start subscribes the notification handlers and runs the sweeper in the
// background until ctx is cancelled. Either argument may be nil.
func Start(ctx context.Context, notifications *service.NotificationService, sweeper *Sweeper) {
	if notifications != nil {
		notifications.RegisterHandlers()
	}
	if sweeper != nil {
		go sweeper.Run(ctx)
	}
}

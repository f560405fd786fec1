package verification

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// Notifier delivers a code to the customer's phone.
type Notifier interface {
	SendCode(ctx context.Context, phone, orderID, code string) error
}

// LogNotifier is a mock SMS gateway that only writes log entries.
// The code itself is logged at debug level so it stays out of production logs.
type LogNotifier struct {
	logger *zap.Logger
	sender string
	ttl    time.Duration
}

// NewLogNotifier builds a notifier signing messages as sender.
func NewLogNotifier(logger *zap.Logger, sender string, ttl time.Duration) *LogNotifier {
	return &LogNotifier{logger: logger, sender: sender, ttl: ttl}
}

func (n *LogNotifier) SendCode(_ context.Context, phone, orderID, code string) error {
	n.logger.Info("sms sent (mock)",
		zap.String("phone", MaskPhone(phone)),
		zap.String("order_id", orderID),
		zap.String("sender", n.sender),
	)
	n.logger.Debug("sms body (mock)",
		zap.String("phone", MaskPhone(phone)),
		zap.String("message", fmt.Sprintf("Your %s order verification code is: %s. Valid for %d minutes.",
			n.sender, code, int(n.ttl.Minutes()))),
	)
	return nil
}

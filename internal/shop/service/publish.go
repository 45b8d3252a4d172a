package service

import (
	"context"
	"log/slog"

	"github.com/zhiidetopchubaeva/shop/pkg/messaging"
)

// publish sends event on a best-effort basis. The operation that produced it
// has already committed, so a failure is only logged.
func publish(ctx context.Context, publisher messaging.Publisher, logger *slog.Logger, event messaging.Event) {
	if err := publisher.Publish(ctx, event); err != nil {
		logger.WarnContext(ctx, "Failed to publish event", slog.String("subject", event.Subject()), slog.String("error", err.Error()))
	}
}

package web

import (
	"context"
	"log/slog"

	"github.com/zhiidetopchubaeva/shop/pkg/auth"
)

type requestIDKey struct{}

// WithRequestID adds a request ID to the context.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// GetRequestID retrieves the request ID from the context.
// Returns the request ID and a boolean indicating whether it was found.
func GetRequestID(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(requestIDKey{}).(string)
	return id, ok
}

// UserIDAttr is a logger.AttrExtractor adding the authenticated user to log records.
func UserIDAttr(ctx context.Context) (slog.Attr, bool) {
	p := auth.PrincipalFromContext(ctx)
	if !p.IsAuthenticated() {
		return slog.Attr{}, false
	}
	return slog.String("user_id", p.UserID.String()), true
}

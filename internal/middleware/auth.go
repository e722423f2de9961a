package middleware

import (
	"context"

	"github.com/jobtrackr/backend/pkg/errorx"
	"github.com/jobtrackr/backend/pkg/router"
	"github.com/jobtrackr/backend/pkg/xcontext"
)

// WithRequestUser resolves the acting user from the X-User-Id header set by
// the authenticating gateway in front of this service.
func WithRequestUser() router.MiddlewareFunc {
	return func(ctx context.Context) (context.Context, error) {
		userID := xcontext.HTTPRequest(ctx).Header.Get("X-User-Id")
		return xcontext.WithRequestUserID(ctx, userID), nil
	}
}

// Authenticate rejects requests whose user could not be resolved.
func Authenticate() router.MiddlewareFunc {
	return func(ctx context.Context) (context.Context, error) {
		if xcontext.RequestUserID(ctx) == "" {
			return ctx, errorx.New(errorx.Unauthenticated, "You need to authenticate before")
		}

		return ctx, nil
	}
}

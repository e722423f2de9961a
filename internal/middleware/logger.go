package middleware

import (
	"context"

	"github.com/jobtrackr/backend/pkg/router"
	"github.com/jobtrackr/backend/pkg/xcontext"
)

func Logger() router.CloserFunc {
	return func(ctx context.Context) {
		req := xcontext.HTTPRequest(ctx)
		xcontext.Logger(ctx).Infof("%s | %s", req.Method, req.URL.Path)
	}
}

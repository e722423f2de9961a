package router

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/jobtrackr/backend/pkg/errorx"
	"github.com/jobtrackr/backend/pkg/xcontext"
	"github.com/mitchellh/mapstructure"
)

func wrapHandler[Request, Response any](
	r *Router,
	method string,
	handler HandlerFunc[Request, Response],
) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		ctx := req.Context()
		ctx = xcontext.WithDB(ctx, r.db)
		ctx = xcontext.WithConfigs(ctx, r.cfg)
		ctx = xcontext.WithLogger(ctx, r.logger)
		ctx = xcontext.WithHTTPRequest(ctx, req)

		resp, err := func() (*Response, error) {
			if req.Method != method {
				return nil, errorx.New(errorx.BadRequest, "Not supported method %s", req.Method)
			}

			var err error
			for _, m := range r.befores {
				if ctx, err = m(ctx); err != nil {
					return nil, err
				}
			}

			request := new(Request)
			switch method {
			case http.MethodGet:
				err = bindQuery(req, request)
			case http.MethodPost:
				err = json.NewDecoder(req.Body).Decode(request)
			}
			if err != nil {
				xcontext.Logger(ctx).Debugf("Cannot bind the request: %v", err)
				return nil, errorx.New(errorx.BadRequest, "Cannot bind the request")
			}

			return handler(ctx, request)
		}()

		if err != nil {
			writeJSON(ctx, w, newErrorResponse(err))
		} else {
			writeJSON(ctx, w, newResponse(resp))
		}

		for _, c := range r.closers {
			c(ctx)
		}
	}
}

// bindQuery decodes url query parameters into the request struct, honoring
// its json tags.
func bindQuery(req *http.Request, target any) error {
	values := map[string]string{}
	for key, value := range req.URL.Query() {
		if len(value) > 0 {
			values[key] = value[0]
		}
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           target,
		TagName:          "json",
		WeaklyTypedInput: true,
	})
	if err != nil {
		return err
	}

	return decoder.Decode(values)
}

func writeJSON(ctx context.Context, w http.ResponseWriter, resp response) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot write the response: %v", err)
	}
}

package router_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/jobtrackr/backend/config"
	"github.com/jobtrackr/backend/pkg/errorx"
	"github.com/jobtrackr/backend/pkg/logger"
	"github.com/jobtrackr/backend/pkg/router"
	"github.com/stretchr/testify/require"
)

type echoRequest struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

type echoResponse struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func newTestRouter() *router.Router {
	return router.New(nil, config.Configs{}, logger.NewLogger())
}

func echo(ctx context.Context, req *echoRequest) (*echoResponse, error) {
	if req.Name == "" {
		return nil, errorx.New(errorx.BadRequest, "Not found name")
	}

	return &echoResponse{Name: req.Name, Count: req.Count}, nil
}

func TestRouterBindsQuery(t *testing.T) {
	r := newTestRouter()
	router.GET(r, "/echo", echo)

	req := httptest.NewRequest(http.MethodGet, "/echo?name=gopher&count=3", nil)
	w := httptest.NewRecorder()
	r.Handler().ServeHTTP(w, req)

	var resp struct {
		Code int          `json:"code"`
		Data echoResponse `json:"data"`
	}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	require.Zero(t, resp.Code)
	require.Equal(t, "gopher", resp.Data.Name)
	require.Equal(t, 3, resp.Data.Count)
}

func TestRouterBindsBody(t *testing.T) {
	r := newTestRouter()
	router.POST(r, "/echo", echo)

	req := httptest.NewRequest(
		http.MethodPost, "/echo", strings.NewReader(`{"name":"gopher","count":7}`))
	w := httptest.NewRecorder()
	r.Handler().ServeHTTP(w, req)

	var resp struct {
		Code int          `json:"code"`
		Data echoResponse `json:"data"`
	}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	require.Zero(t, resp.Code)
	require.Equal(t, "gopher", resp.Data.Name)
	require.Equal(t, 7, resp.Data.Count)
}

func TestRouterErrorEnvelope(t *testing.T) {
	r := newTestRouter()
	router.GET(r, "/echo", echo)

	req := httptest.NewRequest(http.MethodGet, "/echo", nil)
	w := httptest.NewRecorder()
	r.Handler().ServeHTTP(w, req)

	var resp struct {
		Code  int    `json:"code"`
		Error string `json:"error"`
	}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	require.Equal(t, int(errorx.BadRequest), resp.Code)
	require.Equal(t, "Not found name", resp.Error)
}

func TestRouterRejectsWrongMethod(t *testing.T) {
	r := newTestRouter()
	router.POST(r, "/echo", echo)

	req := httptest.NewRequest(http.MethodGet, "/echo", nil)
	w := httptest.NewRecorder()
	r.Handler().ServeHTTP(w, req)

	var resp struct {
		Code int `json:"code"`
	}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	require.Equal(t, int(errorx.BadRequest), resp.Code)
}

func TestRouterBranchMiddleware(t *testing.T) {
	r := newTestRouter()
	router.GET(r, "/open", echo)

	branch := r.Branch()
	branch.Before(func(ctx context.Context) (context.Context, error) {
		return ctx, errorx.New(errorx.Unauthenticated, "You need to authenticate before")
	})
	router.GET(branch, "/locked", echo)

	req := httptest.NewRequest(http.MethodGet, "/locked?name=gopher", nil)
	w := httptest.NewRecorder()
	r.Handler().ServeHTTP(w, req)

	var resp struct {
		Code int `json:"code"`
	}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	require.Equal(t, int(errorx.Unauthenticated), resp.Code)

	// The open route is unaffected by the branch middleware.
	req = httptest.NewRequest(http.MethodGet, "/open?name=gopher", nil)
	w = httptest.NewRecorder()
	r.Handler().ServeHTTP(w, req)

	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	require.Zero(t, resp.Code)
}

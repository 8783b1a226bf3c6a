package router

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/sosyal-lab/backend/config"
	"github.com/sosyal-lab/backend/pkg/errorx"
	"github.com/sosyal-lab/backend/pkg/logger"
	"github.com/sosyal-lab/backend/pkg/xcontext"
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

func newTestContext() context.Context {
	ctx := context.Background()
	ctx = xcontext.WithConfigs(ctx, config.Configs{Env: "test"})
	ctx = xcontext.WithLogger(ctx, logger.NewLogger())
	return ctx
}

func Test_Router_GET_BindsQuery(t *testing.T) {
	r := New(newTestContext())
	GET(r, "/echo", func(ctx context.Context, req *echoRequest) (*echoResponse, error) {
		return &echoResponse{Name: req.Name, Count: req.Count}, nil
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/echo?name=ali&count=3", nil)
	r.Handler(config.ServerConfigs{}).ServeHTTP(w, req)

	var resp struct {
		Code int          `json:"code"`
		Data echoResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, 0, resp.Code)
	require.Equal(t, "ali", resp.Data.Name)
	require.Equal(t, 3, resp.Data.Count)
}

func Test_Router_POST_BindsBody(t *testing.T) {
	r := New(newTestContext())
	POST(r, "/echo", func(ctx context.Context, req *echoRequest) (*echoResponse, error) {
		return &echoResponse{Name: req.Name, Count: req.Count}, nil
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/echo", strings.NewReader(`{"name":"veli","count":7}`))
	r.Handler(config.ServerConfigs{}).ServeHTTP(w, req)

	var resp struct {
		Code int          `json:"code"`
		Data echoResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, 0, resp.Code)
	require.Equal(t, "veli", resp.Data.Name)
	require.Equal(t, 7, resp.Data.Count)
}

func Test_Router_WrongMethod(t *testing.T) {
	r := New(newTestContext())
	POST(r, "/echo", func(ctx context.Context, req *echoRequest) (*echoResponse, error) {
		return &echoResponse{}, nil
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/echo", nil)
	r.Handler(config.ServerConfigs{}).ServeHTTP(w, req)

	var resp struct {
		Code  int    `json:"code"`
		Error string `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, int(errorx.BadRequest), resp.Code)
	require.NotEmpty(t, resp.Error)
}

func Test_Router_HandlerError(t *testing.T) {
	r := New(newTestContext())
	GET(r, "/fail", func(ctx context.Context, req *echoRequest) (*echoResponse, error) {
		return nil, errorx.New(errorx.NotFound, "Not found thing")
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/fail", nil)
	r.Handler(config.ServerConfigs{}).ServeHTTP(w, req)

	var resp struct {
		Code  int    `json:"code"`
		Error string `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, int(errorx.NotFound), resp.Code)
	require.Equal(t, "Not found thing", resp.Error)
}

func Test_Router_MiddlewareReplacesContext(t *testing.T) {
	r := New(newTestContext())

	branch := r.Branch()
	branch.Before(func(ctx context.Context) (context.Context, error) {
		return xcontext.WithRequestUserID(ctx, "user1"), nil
	})

	GET(branch, "/me", func(ctx context.Context, req *echoRequest) (*echoResponse, error) {
		return &echoResponse{Name: xcontext.RequestUserID(ctx)}, nil
	})

	// Routes on the parent router do not see the branch middleware.
	GET(r, "/anon", func(ctx context.Context, req *echoRequest) (*echoResponse, error) {
		return &echoResponse{Name: xcontext.RequestUserID(ctx)}, nil
	})

	w := httptest.NewRecorder()
	r.Handler(config.ServerConfigs{}).ServeHTTP(w, httptest.NewRequest("GET", "/me", nil))

	var resp struct {
		Data echoResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, "user1", resp.Data.Name)

	w = httptest.NewRecorder()
	r.Handler(config.ServerConfigs{}).ServeHTTP(w, httptest.NewRequest("GET", "/anon", nil))
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, "", resp.Data.Name)
}

func Test_Router_MiddlewareError(t *testing.T) {
	r := New(newTestContext())
	r.Before(func(ctx context.Context) (context.Context, error) {
		return nil, errorx.New(errorx.Unauthenticated, "You need to authenticate before")
	})

	called := false
	GET(r, "/secret", func(ctx context.Context, req *echoRequest) (*echoResponse, error) {
		called = true
		return &echoResponse{}, nil
	})

	w := httptest.NewRecorder()
	r.Handler(config.ServerConfigs{}).ServeHTTP(w, httptest.NewRequest("GET", "/secret", nil))

	var resp struct {
		Code int `json:"code"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, int(errorx.Unauthenticated), resp.Code)
	require.False(t, called)
}

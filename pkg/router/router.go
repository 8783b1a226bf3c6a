package router

import (
	"context"
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/rs/cors"
	"github.com/sosyal-lab/backend/config"
	"github.com/sosyal-lab/backend/pkg/ws"
	"github.com/sosyal-lab/backend/pkg/xcontext"
)

type HandlerFunc[Request, Response any] func(ctx context.Context, req *Request) (*Response, error)
type WebsocketHandlerFunc[Request any] func(ctx context.Context, req *Request) error

// MiddlewareFunc runs before the handler. If it returns a non-nil context,
// that context replaces the request context for everything downstream.
// A non-nil error stops the chain and becomes the response.
type MiddlewareFunc func(ctx context.Context) (context.Context, error)

// CloserFunc runs after the response is written, regardless of errors.
type CloserFunc func(ctx context.Context)

type Router struct {
	ctx context.Context
	mux *http.ServeMux

	befores []MiddlewareFunc
	afters  []MiddlewareFunc
	closers []CloserFunc
}

func New(ctx context.Context) *Router {
	return &Router{ctx: ctx, mux: http.NewServeMux()}
}

// Branch creates a router sharing the same mux but with an independent copy
// of the middleware chains, so routes registered on the branch can carry
// extra middlewares without affecting the parent.
func (r *Router) Branch() *Router {
	return &Router{
		ctx:     r.ctx,
		mux:     r.mux,
		befores: append([]MiddlewareFunc{}, r.befores...),
		afters:  append([]MiddlewareFunc{}, r.afters...),
		closers: append([]CloserFunc{}, r.closers...),
	}
}

func (r *Router) Before(middleware MiddlewareFunc) {
	r.befores = append(r.befores, middleware)
}

func (r *Router) After(middleware MiddlewareFunc) {
	r.afters = append(r.afters, middleware)
}

func (r *Router) AddCloser(closer CloserFunc) {
	r.closers = append(r.closers, closer)
}

func (r *Router) Handler(cfg config.ServerConfigs) http.Handler {
	if len(cfg.AllowCORS) == 0 {
		return r.mux
	}

	return cors.New(cors.Options{
		AllowedOrigins:   cfg.AllowCORS,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Content-Type", "Content-Length", "Authorization"},
		AllowCredentials: true,
	}).Handler(r.mux)
}

func GET[Request, Response any](r *Router, pattern string, handler HandlerFunc[Request, Response]) {
	register(r, http.MethodGet, pattern, handler)
}

func POST[Request, Response any](r *Router, pattern string, handler HandlerFunc[Request, Response]) {
	register(r, http.MethodPost, pattern, handler)
}

// Websocket registers a handler that takes over the connection after the
// upgrade. The handler blocks until the connection drops; errors before the
// upgrade are reported like regular handler errors.
func Websocket[Request any](r *Router, pattern string, handler WebsocketHandlerFunc[Request]) {
	befores := append([]MiddlewareFunc{}, r.befores...)
	closers := append([]CloserFunc{}, r.closers...)
	root := r.ctx

	upgrader := websocket.Upgrader{
		CheckOrigin: func(*http.Request) bool { return true },
	}

	r.mux.HandleFunc(pattern, func(w http.ResponseWriter, req *http.Request) {
		ctx := setupContext(root, req, w)
		defer runClosers(ctx, closers)

		ctx, err := runMiddlewares(ctx, befores)
		if err != nil {
			xcontext.SetError(ctx, err)
			writeError(ctx, err)
			return
		}

		parsedReq, err := parseRequest[Request](ctx, http.MethodGet)
		if err != nil {
			xcontext.SetError(ctx, err)
			writeError(ctx, err)
			return
		}

		conn, err := upgrader.Upgrade(w, req, nil)
		if err != nil {
			xcontext.Logger(ctx).Warnf("Cannot upgrade connection: %v", err)
			xcontext.SetError(ctx, err)
			return
		}

		client := ws.NewClient(conn)
		defer client.Close()

		if err := handler(xcontext.WithWSClient(ctx, client), parsedReq); err != nil {
			xcontext.SetError(ctx, err)
		}
	})
}

func register[Request, Response any](
	r *Router, method, pattern string, handler HandlerFunc[Request, Response],
) {
	befores := append([]MiddlewareFunc{}, r.befores...)
	afters := append([]MiddlewareFunc{}, r.afters...)
	closers := append([]CloserFunc{}, r.closers...)
	root := r.ctx

	r.mux.HandleFunc(pattern, func(w http.ResponseWriter, req *http.Request) {
		ctx := setupContext(root, req, w)
		defer runClosers(ctx, closers)

		if req.Method != method {
			err := methodNotAllowedError(req.Method)
			xcontext.SetError(ctx, err)
			writeError(ctx, err)
			return
		}

		err := func() error {
			ctx, err := runMiddlewares(ctx, befores)
			if err != nil {
				return err
			}

			parsedReq, err := parseRequest[Request](ctx, method)
			if err != nil {
				return err
			}

			resp, err := handler(ctx, parsedReq)
			if err != nil {
				return err
			}

			xcontext.SetResponse(ctx, resp)
			if _, err := runMiddlewares(ctx, afters); err != nil {
				return err
			}

			return writeResponse(ctx, resp)
		}()

		if err != nil {
			xcontext.SetError(ctx, err)
			writeError(ctx, err)
		}
	})
}

func setupContext(root context.Context, req *http.Request, w http.ResponseWriter) context.Context {
	ctx := xcontext.WithHTTPRequest(root, req)
	ctx = xcontext.WithHTTPWriter(ctx, w)
	ctx = xcontext.WithError(ctx)
	ctx = xcontext.WithResponse(ctx)
	return ctx
}

func runMiddlewares(ctx context.Context, middlewares []MiddlewareFunc) (context.Context, error) {
	for _, m := range middlewares {
		newCtx, err := m(ctx)
		if err != nil {
			return ctx, err
		}

		if newCtx != nil {
			ctx = newCtx
		}
	}

	return ctx, nil
}

func runClosers(ctx context.Context, closers []CloserFunc) {
	for _, closer := range closers {
		closer(ctx)
	}
}

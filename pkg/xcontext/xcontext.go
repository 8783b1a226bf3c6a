package xcontext

import (
	"context"
	"net/http"

	"github.com/bwmarrin/snowflake"
	"github.com/gorilla/sessions"
	"github.com/sosyal-lab/backend/config"
	"github.com/sosyal-lab/backend/internal/model"
	"github.com/sosyal-lab/backend/pkg/authenticator"
	"github.com/sosyal-lab/backend/pkg/logger"
	"github.com/sosyal-lab/backend/pkg/ws"
	"gorm.io/gorm"
)

type (
	dbKey           struct{}
	loggerKey       struct{}
	configsKey      struct{}
	tokenEngineKey  struct{}
	sessionStoreKey struct{}
	snowflakeKey    struct{}
	userIDKey       struct{}
	httpRequestKey  struct{}
	httpWriterKey   struct{}
	errorKey        struct{}
	responseKey     struct{}
	wsClientKey     struct{}
)

type errorBox struct{ err error }
type responseBox struct{ resp any }

func WithDB(ctx context.Context, db *gorm.DB) context.Context {
	return context.WithValue(ctx, dbKey{}, db)
}

func DB(ctx context.Context) *gorm.DB {
	return ctx.Value(dbKey{}).(*gorm.DB)
}

// WithDBTransaction runs fn with a transactional DB inside the context. The
// transaction commits if fn returns nil, otherwise rollbacks.
func WithDBTransaction(ctx context.Context, fn func(context.Context) error) error {
	return DB(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(WithDB(ctx, tx))
	})
}

func WithLogger(ctx context.Context, l logger.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, l)
}

func Logger(ctx context.Context) logger.Logger {
	if l, ok := ctx.Value(loggerKey{}).(logger.Logger); ok {
		return l
	}

	return logger.NewLogger()
}

func WithConfigs(ctx context.Context, cfg config.Configs) context.Context {
	return context.WithValue(ctx, configsKey{}, cfg)
}

func Configs(ctx context.Context) config.Configs {
	return ctx.Value(configsKey{}).(config.Configs)
}

func WithTokenEngine(ctx context.Context, engine authenticator.TokenEngine[model.AccessToken]) context.Context {
	return context.WithValue(ctx, tokenEngineKey{}, engine)
}

func TokenEngine(ctx context.Context) authenticator.TokenEngine[model.AccessToken] {
	return ctx.Value(tokenEngineKey{}).(authenticator.TokenEngine[model.AccessToken])
}

func WithSessionStore(ctx context.Context, store sessions.Store) context.Context {
	return context.WithValue(ctx, sessionStoreKey{}, store)
}

func SessionStore(ctx context.Context) sessions.Store {
	return ctx.Value(sessionStoreKey{}).(sessions.Store)
}

func WithSnowFlake(ctx context.Context, node *snowflake.Node) context.Context {
	return context.WithValue(ctx, snowflakeKey{}, node)
}

func SnowFlake(ctx context.Context) *snowflake.Node {
	return ctx.Value(snowflakeKey{}).(*snowflake.Node)
}

func WithRequestUserID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, userIDKey{}, id)
}

func RequestUserID(ctx context.Context) string {
	if id, ok := ctx.Value(userIDKey{}).(string); ok {
		return id
	}

	return ""
}

func WithHTTPRequest(ctx context.Context, r *http.Request) context.Context {
	return context.WithValue(ctx, httpRequestKey{}, r)
}

func HTTPRequest(ctx context.Context) *http.Request {
	return ctx.Value(httpRequestKey{}).(*http.Request)
}

func WithHTTPWriter(ctx context.Context, w http.ResponseWriter) context.Context {
	return context.WithValue(ctx, httpWriterKey{}, w)
}

func HTTPWriter(ctx context.Context) http.ResponseWriter {
	return ctx.Value(httpWriterKey{}).(http.ResponseWriter)
}

func WithWSClient(ctx context.Context, client *ws.Client) context.Context {
	return context.WithValue(ctx, wsClientKey{}, client)
}

func WSClient(ctx context.Context) *ws.Client {
	return ctx.Value(wsClientKey{}).(*ws.Client)
}

// WithError installs a mutable error slot used by the router. SetError and
// Error read and write that slot, so closers observe the handler result even
// though the context value itself never changes.
func WithError(ctx context.Context) context.Context {
	return context.WithValue(ctx, errorKey{}, &errorBox{})
}

func SetError(ctx context.Context, err error) {
	if box, ok := ctx.Value(errorKey{}).(*errorBox); ok {
		box.err = err
	}
}

func Error(ctx context.Context) error {
	if box, ok := ctx.Value(errorKey{}).(*errorBox); ok {
		return box.err
	}

	return nil
}

// WithResponse installs a mutable response slot like WithError does.
func WithResponse(ctx context.Context) context.Context {
	return context.WithValue(ctx, responseKey{}, &responseBox{})
}

func SetResponse(ctx context.Context, resp any) {
	if box, ok := ctx.Value(responseKey{}).(*responseBox); ok {
		box.resp = resp
	}
}

func Response(ctx context.Context) any {
	if box, ok := ctx.Value(responseKey{}).(*responseBox); ok {
		return box.resp
	}

	return nil
}

package proxy

import (
	"context"
	"encoding/json"

	"github.com/sosyal-lab/backend/internal/common"
	"github.com/sosyal-lab/backend/internal/domain/notification/event"
	"github.com/sosyal-lab/backend/internal/model"
	"github.com/sosyal-lab/backend/internal/repository"
	"github.com/sosyal-lab/backend/pkg/errorx"
	"github.com/sosyal-lab/backend/pkg/xcontext"
	"github.com/sosyal-lab/backend/pkg/xredis"
)

type ProxyServer struct {
	router           *Router
	notificationRepo repository.NotificationRepository
	redisClient      xredis.Client
}

func NewProxyServer(
	ctx context.Context,
	notificationRepo repository.NotificationRepository,
	redisClient xredis.Client,
) *ProxyServer {
	return &ProxyServer{
		router:           NewRouter(ctx),
		notificationRepo: notificationRepo,
		redisClient:      redisClient,
	}
}

// Router exposes the event router so the broker subscriber can be wired to
// it.
func (server *ProxyServer) Router() *Router {
	return server.router
}

// ServeProxy blocks for the lifetime of a websocket connection. The user is
// marked online for as long as at least one of their sessions is open.
func (server *ProxyServer) ServeProxy(ctx context.Context, req *model.ServeNotificationProxyRequest) error {
	userID := xcontext.RequestUserID(ctx)

	hub := server.router.GetHub(userID)
	session := NewUserSession(userID)
	session.Join(hub)
	defer server.leave(ctx, session)

	if err := server.redisClient.SAdd(ctx, common.RedisKeyOnlineUsers(), userID); err != nil {
		xcontext.Logger(ctx).Warnf("Cannot mark user online: %v", err)
	}

	unread, err := server.notificationRepo.CountUnread(ctx, userID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot count unread notifications: %v", err)
		return errorx.Unknown
	}

	session.C <- event.New(
		&event.ReadyEvent{UnreadNotifications: unread},
		event.Metadata{To: userID},
	)

	wsClient := xcontext.WSClient(ctx)
	var seq int64
	for {
		select {
		case ev, ok := <-session.C:
			if !ok {
				return errorx.New(errorx.Unavailable, "Session is closed")
			}

			b, err := json.Marshal(event.Format(ev, seq))
			if err != nil {
				xcontext.Logger(ctx).Warnf("Cannot marshal event: %v", err)
				continue
			}
			seq++

			if err := wsClient.Write(b); err != nil {
				xcontext.Logger(ctx).Warnf("Cannot send event to client: %v", err)
				return errorx.Unknown
			}

		case _, ok := <-wsClient.R:
			if !ok {
				return nil
			}

			// Clients only send keepalives for now.
		}
	}
}

func (server *ProxyServer) leave(ctx context.Context, session *UserSession) {
	session.Leave()

	hub := server.router.GetHub(session.userID)
	if hub.IsEmpty() {
		err := server.redisClient.SRem(ctx, common.RedisKeyOnlineUsers(), session.userID)
		if err != nil {
			xcontext.Logger(ctx).Warnf("Cannot mark user offline: %v", err)
		}
	}
}

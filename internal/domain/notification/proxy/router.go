package proxy

import (
	"context"
	"encoding/json"
	"time"

	"github.com/puzpuzpuz/xsync"
	"github.com/sosyal-lab/backend/internal/domain/notification/event"
	"github.com/sosyal-lab/backend/pkg/pubsub"
	"github.com/sosyal-lab/backend/pkg/xcontext"
)

// Router dispatches events consumed from the broker to the hub of the
// recipient user. Events addressed to users with no open session on this
// instance are dropped, they are already persisted by the api server.
type Router struct {
	hubs *xsync.MapOf[string, *UserHub]
}

func NewRouter(ctx context.Context) *Router {
	router := &Router{hubs: xsync.NewMapOf[*UserHub]()}
	go router.run(ctx)
	return router
}

func (r *Router) GetHub(userID string) *UserHub {
	hub, _ := r.hubs.LoadOrCompute(userID, func() *UserHub {
		return NewUserHub(userID)
	})

	return hub
}

// Route is the broker subscribe handler.
func (r *Router) Route(ctx context.Context, pack *pubsub.Pack, t time.Time) {
	var ev event.EventRequest
	if err := json.Unmarshal(pack.Msg, &ev); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot unmarshal event: %v", err)
		return
	}

	if hub, ok := r.hubs.Load(ev.Metadata.To); ok {
		hub.Send(&ev)
	}
}

func (r *Router) run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-time.After(5 * time.Second):
			r.cleanup()
		}
	}
}

func (r *Router) cleanup() {
	empty := []string{}
	r.hubs.Range(func(userID string, hub *UserHub) bool {
		if hub.IsEmpty() {
			empty = append(empty, userID)
		}
		return true
	})

	for _, userID := range empty {
		if hub, ok := r.hubs.Load(userID); ok && hub.IsEmpty() {
			r.hubs.Delete(userID)
		}
	}
}

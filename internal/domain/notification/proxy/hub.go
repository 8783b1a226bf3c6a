package proxy

import (
	"sync"

	"github.com/sosyal-lab/backend/internal/domain/notification/event"
)

// UserHub fans an event out to every active session of one user. A user
// with the app open in two tabs has two sessions in the same hub.
type UserHub struct {
	userID   string
	sessions map[string]*UserSession

	mutex sync.RWMutex
}

func NewUserHub(userID string) *UserHub {
	return &UserHub{
		userID:   userID,
		sessions: make(map[string]*UserSession),
	}
}

func (h *UserHub) Send(event *event.EventRequest) {
	h.mutex.RLock()
	for _, s := range h.sessions {
		s.C <- event
	}
	h.mutex.RUnlock()
}

func (h *UserHub) register(session *UserSession) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	if _, ok := h.sessions[session.id]; !ok {
		h.sessions[session.id] = session
	}
}

func (h *UserHub) unregister(session *UserSession) {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	delete(h.sessions, session.id)
}

func (h *UserHub) IsEmpty() bool {
	h.mutex.RLock()
	defer h.mutex.RUnlock()

	return len(h.sessions) == 0
}

package proxy

import (
	"github.com/google/uuid"
	"github.com/sosyal-lab/backend/internal/domain/notification/event"
)

type UserSession struct {
	C chan *event.EventRequest

	id        string
	userID    string
	joinedHub *UserHub
}

func NewUserSession(userID string) *UserSession {
	return &UserSession{
		C:      make(chan *event.EventRequest, 16),
		id:     uuid.NewString(),
		userID: userID,
	}
}

func (s *UserSession) Join(hub *UserHub) {
	hub.register(s)
	s.joinedHub = hub
}

func (s *UserSession) Leave() {
	if s.joinedHub != nil {
		s.joinedHub.unregister(s)
		s.joinedHub = nil
	}

	close(s.C)
}

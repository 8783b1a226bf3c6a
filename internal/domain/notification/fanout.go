package notification

import (
	"context"
	"encoding/json"

	"github.com/sosyal-lab/backend/internal/domain/notification/event"
	"github.com/sosyal-lab/backend/internal/entity"
	"github.com/sosyal-lab/backend/internal/model"
	"github.com/sosyal-lab/backend/internal/repository"
	"github.com/sosyal-lab/backend/pkg/pubsub"
	"github.com/sosyal-lab/backend/pkg/xcontext"
)

// Fanout persists notifications and forwards them to online recipients
// through the message broker. Persistence is the source of truth: a broker
// failure only delays the real-time push, the notification itself is never
// lost.
type Fanout struct {
	notificationRepo repository.NotificationRepository
	publisher        pubsub.Publisher
}

func NewFanout(
	notificationRepo repository.NotificationRepository,
	publisher pubsub.Publisher,
) *Fanout {
	return &Fanout{
		notificationRepo: notificationRepo,
		publisher:        publisher,
	}
}

func (f *Fanout) Notify(
	ctx context.Context,
	userID string,
	typ entity.NotificationType,
	message, relatedID string,
) error {
	notification := &entity.Notification{
		ID:        xcontext.SnowFlake(ctx).Generate().Int64(),
		UserID:    userID,
		Message:   message,
		Type:      typ,
		RelatedID: relatedID,
	}

	if err := f.notificationRepo.Create(ctx, notification); err != nil {
		return err
	}

	clientNotification := model.ConvertNotification(notification)
	f.publish(ctx, event.New(
		(*event.NotificationCreatedEvent)(&clientNotification),
		event.Metadata{To: userID},
	))

	return nil
}

// NotifyMessage pushes a direct message to the recipient in real time. It
// does not create a notification row, the message itself is already stored.
func (f *Fanout) NotifyMessage(ctx context.Context, recipientID string, msg model.Message) {
	f.publish(ctx, event.New(
		(*event.MessageCreatedEvent)(&msg),
		event.Metadata{To: recipientID},
	))
}

func (f *Fanout) publish(ctx context.Context, ev *event.EventRequest) {
	if f.publisher == nil {
		return
	}

	b, err := json.Marshal(ev)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot marshal event: %v", err)
		return
	}

	topic := xcontext.Configs(ctx).Kafka.NotificationTopic
	err = f.publisher.Publish(ctx, topic, &pubsub.Pack{
		Key: []byte(ev.Metadata.To),
		Msg: b,
	})
	if err != nil {
		xcontext.Logger(ctx).Warnf("Cannot publish event: %v", err)
	}
}

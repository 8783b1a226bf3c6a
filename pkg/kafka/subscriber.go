package kafka

import (
	"context"

	"github.com/Shopify/sarama"
	"github.com/sosyal-lab/backend/pkg/logger"
	"github.com/sosyal-lab/backend/pkg/pubsub"
)

type subscriber struct {
	groupID string
	topics  []string
	client  sarama.ConsumerGroup
	handler pubsub.SubscribeHandler
	logger  logger.Logger
}

func NewSubscriber(
	groupID string,
	brokerAddrs []string,
	topics []string,
	handler pubsub.SubscribeHandler,
	logger logger.Logger,
) (pubsub.Subscriber, error) {
	config := sarama.NewConfig()
	config.Consumer.Group.Rebalance.Strategy = sarama.BalanceStrategyRoundRobin
	config.Consumer.Offsets.Initial = sarama.OffsetNewest

	client, err := sarama.NewConsumerGroup(brokerAddrs, groupID, config)
	if err != nil {
		return nil, err
	}

	return &subscriber{
		groupID: groupID,
		topics:  topics,
		client:  client,
		handler: handler,
		logger:  logger,
	}, nil
}

func (s *subscriber) Subscribe(ctx context.Context) {
	consumer := consumerGroupHandler{
		ready: make(chan struct{}),
		fn:    s.handler,
	}

	go func() {
		for {
			// Consume is re-called after every server-side rebalance to pick
			// up the new claims.
			if err := s.client.Consume(ctx, s.topics, &consumer); err != nil {
				s.logger.Errorf("Consumer group error: %v", err)
				return
			}

			if ctx.Err() != nil {
				return
			}

			consumer.ready = make(chan struct{})
		}
	}()

	<-consumer.ready
}

func (s *subscriber) Stop(ctx context.Context) error {
	return s.client.Close()
}

type consumerGroupHandler struct {
	ready chan struct{}
	fn    pubsub.SubscribeHandler
}

func (h *consumerGroupHandler) Setup(sarama.ConsumerGroupSession) error {
	close(h.ready)
	return nil
}

func (h *consumerGroupHandler) Cleanup(sarama.ConsumerGroupSession) error {
	return nil
}

func (h *consumerGroupHandler) ConsumeClaim(
	session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim,
) error {
	for message := range claim.Messages() {
		session.MarkMessage(message, "")
		h.fn(session.Context(), &pubsub.Pack{
			Key: message.Key,
			Msg: message.Value,
		}, message.Timestamp)
	}

	return nil
}

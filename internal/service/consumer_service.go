package service

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"skillswap-be/pkg/events"
	pktNats "skillswap-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// consumerService drains the in-process message-persisted topic and forwards
// each item to NATS as a durable domain event. The relay never waits on
// this pipeline.
type consumerService struct {
	pubSub         *gochannel.GoChannel
	topicName      string
	eventPublisher *pktNats.Publisher
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	eventPublisher *pktNats.Publisher,
) IConsumerService {
	return &consumerService{
		pubSub:         pubSub,
		topicName:      topicName,
		eventPublisher: eventPublisher,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload struct {
		MessageId  uint `json:"messageId"`
		SenderId   uint `json:"senderId"`
		ReceiverId uint `json:"receiverId"`
	}
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		log.Printf("[ERROR] Failed to unmarshal persisted-message payload: %v", err)
		msg.Ack() // invalid payloads are not retriable
		return
	}

	if cs.eventPublisher != nil {
		event := events.BaseEvent{
			Type: "CHAT_MESSAGE_SENT",
			Data: map[string]interface{}{
				"message_id":  payload.MessageId,
				"sender_id":   payload.SenderId,
				"receiver_id": payload.ReceiverId,
			},
			OccurredAt: time.Now(),
		}
		if err := cs.eventPublisher.Publish(ctx, event); err != nil {
			log.Printf("[WARN] Failed to forward CHAT_MESSAGE_SENT to NATS: %v", err)
		}
	}

	msg.Ack()
}

package events

import (
	"context"
	"encoding/json"
	"fmt"

	"AgroShopAPI/internal/model"

	"github.com/segmentio/kafka-go"
)

// OrderPublisher announces orders that have been committed.
type OrderPublisher interface {
	OrderCreated(ctx context.Context, o *model.Order) error
}

// MessageWriter is the part of *kafka.Writer the publisher uses.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
}

type KafkaPublisher struct {
	w MessageWriter
}

func NewKafkaWriter(brokers []string, topic string) *kafka.Writer {
	return &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.LeastBytes{},
		AllowAutoTopicCreation: true,
	}
}

func NewKafkaPublisher(w MessageWriter) *KafkaPublisher {
	return &KafkaPublisher{w: w}
}

// OrderCreated writes the order as JSON keyed "order.created.<id>".
func (p *KafkaPublisher) OrderCreated(ctx context.Context, o *model.Order) error {
	body, err := json.Marshal(o)
	if err != nil {
		return err
	}
	return p.w.WriteMessages(ctx, kafka.Message{
		Key:   []byte(fmt.Sprintf("order.created.%d", o.ID)),
		Value: body,
	})
}

// Noop is used when no brokers are configured.
type Noop struct{}

func (Noop) OrderCreated(context.Context, *model.Order) error { return nil }

package checkout

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/nerkean/vuzlyk-do-vuzlyka-site/internal/domain"
	"github.com/segmentio/kafka-go"
)

// EventPublisher announces finalized orders to downstream consumers
// (notifications, fulfillment). Publishing is best effort: the order is
// already durable when it runs.
type EventPublisher interface {
	OrderPlaced(ctx context.Context, order *domain.Order) error
}

type KafkaPublisher struct {
	writer *kafka.Writer
}

func NewKafkaPublisher(brokers ...string) *KafkaPublisher {
	w := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  "order-events",
		Balancer:               &kafka.LeastBytes{},
		AllowAutoTopicCreation: true,
	}
	return &KafkaPublisher{writer: w}
}

func (p *KafkaPublisher) OrderPlaced(ctx context.Context, order *domain.Order) error {
	payload, err := json.Marshal(map[string]interface{}{
		"order_id":     order.ID,
		"user_id":      order.UserID,
		"items":        order.Items,
		"total_amount": order.Total,
		"currency":     domain.BaseCurrency,
		"placed_at":    order.CreatedAt,
	})
	if err != nil {
		return fmt.Errorf("marshal order payload: %w", err)
	}

	msg := kafka.Message{
		Key:   []byte(order.ID.String()), // order_id for ordering
		Value: payload,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte("order.placed")},
		},
	}

	return p.writer.WriteMessages(ctx, msg)
}

func (p *KafkaPublisher) Close() {
	if err := p.writer.Close(); err != nil {
		log.Printf("error closing kafka writer: %v", err)
	}
}

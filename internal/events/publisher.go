package events

import (
	"encoding/json"
	"log/slog"
	"time"

	"github.com/IBM/sarama"

	"github.com/ZeinabAndPixel/Z-One-Laptop/internal/domain/model"
)

const (
	OrderPlacedTopic        = "orders.placed"
	OrderStatusChangedTopic = "orders.status"
)

// OrderPlacedEvent is emitted after the placement transaction commits.
type OrderPlacedEvent struct {
	OrderID            string    `json:"order_id"`
	CustomerNationalID string    `json:"customer_national_id"`
	Total              string    `json:"total"`
	PaymentMethod      string    `json:"payment_method"`
	CreatedAt          time.Time `json:"created_at"`
	EventTime          time.Time `json:"event_time"`
}

// OrderStatusChangedEvent is emitted after a status write commits.
type OrderStatusChangedEvent struct {
	OrderID        string    `json:"order_id"`
	PreviousStatus string    `json:"previous_status"`
	Status         string    `json:"status"`
	EventTime      time.Time `json:"event_time"`
}

// Publisher emits order lifecycle events. Implementations must be safe to
// call from request handlers; failures are the caller's to log, never to
// fail the request on.
type Publisher interface {
	PublishOrderPlaced(order *model.Order) error
	PublishStatusChanged(order *model.Order, previous model.OrderStatus) error
	Close() error
}

// KafkaPublisher emits events through a sarama synchronous producer,
// partitioned by order ID.
type KafkaPublisher struct {
	producer sarama.SyncProducer
	logger   *slog.Logger
}

// NewKafkaPublisher connects a synchronous producer to the given brokers.
func NewKafkaPublisher(brokers []string, logger *slog.Logger) (*KafkaPublisher, error) {
	config := sarama.NewConfig()
	config.Producer.RequiredAcks = sarama.WaitForAll
	config.Producer.Retry.Max = 5
	config.Producer.Return.Successes = true

	producer, err := sarama.NewSyncProducer(brokers, config)
	if err != nil {
		return nil, err
	}

	return &KafkaPublisher{producer: producer, logger: logger}, nil
}

func (p *KafkaPublisher) PublishOrderPlaced(order *model.Order) error {
	event := OrderPlacedEvent{
		OrderID:            order.ID,
		CustomerNationalID: order.CustomerNationalID,
		Total:              order.Total.String(),
		PaymentMethod:      string(order.PaymentMethod),
		CreatedAt:          order.CreatedAt,
		EventTime:          time.Now(),
	}
	return p.publish(OrderPlacedTopic, order.ID, event)
}

func (p *KafkaPublisher) PublishStatusChanged(order *model.Order, previous model.OrderStatus) error {
	event := OrderStatusChangedEvent{
		OrderID:        order.ID,
		PreviousStatus: string(previous),
		Status:         string(order.Status),
		EventTime:      time.Now(),
	}
	return p.publish(OrderStatusChangedTopic, order.ID, event)
}

func (p *KafkaPublisher) publish(topic, key string, event any) error {
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}

	msg := &sarama.ProducerMessage{
		Topic: topic,
		Key:   sarama.StringEncoder(key),
		Value: sarama.ByteEncoder(data),
	}

	partition, offset, err := p.producer.SendMessage(msg)
	if err != nil {
		return err
	}

	p.logger.Info("order event published",
		slog.String("topic", topic),
		slog.Int64("partition", int64(partition)),
		slog.Int64("offset", offset),
		slog.String("order_id", key),
	)
	return nil
}

func (p *KafkaPublisher) Close() error {
	return p.producer.Close()
}

// Noop serves a deployment without a broker.
type Noop struct{}

func (Noop) PublishOrderPlaced(*model.Order) error                      { return nil }
func (Noop) PublishStatusChanged(*model.Order, model.OrderStatus) error { return nil }
func (Noop) Close() error                                               { return nil }

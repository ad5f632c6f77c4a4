package publisher

import (
	"context"
	"encoding/json"
	"time"

	"github.com/Tengoku18/thirft-verse-sub001/internal/domain"
	"github.com/segmentio/kafka-go"
)

type DefaultKafkaPublisher struct {
	writer *kafka.Writer
}

func NewDefaultKafkaPublisher(brokers []string) *DefaultKafkaPublisher {
	return &DefaultKafkaPublisher{
		writer: &kafka.Writer{
			Addr:     kafka.TCP(brokers...),
			Balancer: &kafka.LeastBytes{},
		},
	}
}

func (k *DefaultKafkaPublisher) Publish(topic string, msgs ...domain.Message) error {
	var km []kafka.Message
	for _, m := range msgs {
		km = append(km, kafka.Message{
			Key:   m.Key,
			Value: m.Value,
			Time:  time.Now(),
			Topic: topic,
		})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return k.writer.WriteMessages(ctx, km...)
}

func (k *DefaultKafkaPublisher) Close() error {
	return k.writer.Close()
}

// OrderEventWriter serializes order events onto any publisher port.
type OrderEventWriter struct {
	port domain.PublisherPort
}

func NewOrderEventWriter(port domain.PublisherPort) *OrderEventWriter {
	return &OrderEventWriter{port: port}
}

// PublishOrderEvent keys by seller so one seller's order events stay ordered
// within a partition.
func (w *OrderEventWriter) PublishOrderEvent(topic string, event OrderEvent) error {
	v, err := json.Marshal(event)
	if err != nil {
		return err
	}

	return w.port.Publish(topic, domain.Message{Key: []byte(event.SellerID), Value: v})
}

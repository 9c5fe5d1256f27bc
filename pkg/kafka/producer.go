package kafka

import (
	"context"
	"fmt"

	kafkago "github.com/segmentio/kafka-go"

	kafka_config "github.com/AnshuShetty/HotelManagementBackend/pkg/kafka/config"
	"github.com/AnshuShetty/HotelManagementBackend/pkg/logger"
)

// Producer publishes event messages to Kafka. All writes go through a
// single shared writer; the topic is set per message.
type Producer struct {
	writer *kafkago.Writer
	log    *logger.Logger
}

func NewProducer(cfg *kafka_config.Config, log *logger.Logger) *Producer {
	writer := &kafkago.Writer{
		Addr:         kafkago.TCP(cfg.Brokers...),
		Balancer:     &kafkago.Hash{},
		MaxAttempts:  cfg.ProducerMaxAttempts,
		BatchTimeout: cfg.ProducerBatchTimeout,
		RequiredAcks: kafkago.RequiredAcks(cfg.ProducerRequireAcks),
	}

	return &Producer{
		writer: writer,
		log:    log,
	}
}

func (p *Producer) Publish(ctx context.Context, msg kafkago.Message) error {
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		p.log.Error("Failed to publish message",
			"topic", msg.Topic,
			"key", string(msg.Key),
			"error", err)
		return fmt.Errorf("failed to publish message to topic %s: %w", msg.Topic, err)
	}

	p.log.Debug("Published message",
		"topic", msg.Topic,
		"key", string(msg.Key),
		"event_id", HeaderValue(msg, HeaderEventID),
		"event_type", HeaderValue(msg, HeaderEventType))

	return nil
}

func (p *Producer) Close() error {
	return p.writer.Close()
}

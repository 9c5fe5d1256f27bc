package kafka

import (
	"context"
	"errors"

	kafkago "github.com/segmentio/kafka-go"

	kafka_config "github.com/AnshuShetty/HotelManagementBackend/pkg/kafka/config"
	"github.com/AnshuShetty/HotelManagementBackend/pkg/logger"
)

// MessageHandler processes a single consumed message. A returned error
// logs the failure; the offset is committed either way, so handlers own
// their retries.
type MessageHandler func(ctx context.Context, msg kafkago.Message) error

// Consumer reads messages from a topic as part of a consumer group and
// dispatches them to a handler.
type Consumer struct {
	reader  *kafkago.Reader
	handler MessageHandler
	log     *logger.Logger
}

func NewConsumer(cfg *kafka_config.Config, topic, groupID string, handler MessageHandler, log *logger.Logger) *Consumer {
	reader := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:        cfg.Brokers,
		Topic:          topic,
		GroupID:        groupID,
		MinBytes:       cfg.ConsumerMinBytes,
		MaxBytes:       cfg.ConsumerMaxBytes,
		MaxWait:        cfg.ConsumerMaxWait,
		CommitInterval: cfg.ConsumerCommitInterval,
	})

	return &Consumer{
		reader:  reader,
		handler: handler,
		log:     log,
	}
}

// Run consumes messages until the context is cancelled or the reader is
// closed.
func (c *Consumer) Run(ctx context.Context) error {
	c.log.Info("Consumer started",
		"topic", c.reader.Config().Topic,
		"group_id", c.reader.Config().GroupID)

	for {
		msg, err := c.reader.ReadMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, kafkago.ErrGroupClosed) {
				c.log.Info("Consumer stopped", "topic", c.reader.Config().Topic)
				return nil
			}
			c.log.Error("Failed to read message", "error", err)
			return err
		}

		if err := c.handler(ctx, msg); err != nil {
			c.log.Error("Failed to handle message",
				"topic", msg.Topic,
				"partition", msg.Partition,
				"offset", msg.Offset,
				"event_id", HeaderValue(msg, HeaderEventID),
				"event_type", HeaderValue(msg, HeaderEventType),
				"error", err)
			continue
		}

		c.log.Debug("Handled message",
			"topic", msg.Topic,
			"partition", msg.Partition,
			"offset", msg.Offset,
			"event_type", HeaderValue(msg, HeaderEventType))
	}
}

func (c *Consumer) Close() error {
	return c.reader.Close()
}

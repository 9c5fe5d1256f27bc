package kafka

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	kafkago "github.com/segmentio/kafka-go"
)

// Standard message headers attached to every published event.
const (
	HeaderEventID     = "event-id"
	HeaderEventType   = "event-type"
	HeaderContentType = "content-type"
	HeaderProducedAt  = "produced-at"
	HeaderSource      = "source"
)

// MessageBuilder assembles a Kafka message with the standard header set.
type MessageBuilder struct {
	topic     string
	key       []byte
	payload   any
	eventType string
	source    string
	headers   []kafkago.Header
}

func NewMessage(topic string) *MessageBuilder {
	return &MessageBuilder{topic: topic}
}

// WithKey sets the partition key. Events sharing a key preserve their
// relative order within the topic.
func (b *MessageBuilder) WithKey(key string) *MessageBuilder {
	b.key = []byte(key)
	return b
}

func (b *MessageBuilder) WithPayload(payload any) *MessageBuilder {
	b.payload = payload
	return b
}

func (b *MessageBuilder) WithEventType(eventType string) *MessageBuilder {
	b.eventType = eventType
	return b
}

func (b *MessageBuilder) WithSource(source string) *MessageBuilder {
	b.source = source
	return b
}

func (b *MessageBuilder) WithHeader(key, value string) *MessageBuilder {
	b.headers = append(b.headers, kafkago.Header{Key: key, Value: []byte(value)})
	return b
}

func (b *MessageBuilder) Build() (kafkago.Message, error) {
	if b.topic == "" {
		return kafkago.Message{}, fmt.Errorf("message topic is required")
	}
	if b.eventType == "" {
		return kafkago.Message{}, fmt.Errorf("message event type is required")
	}

	value, err := json.Marshal(b.payload)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("failed to marshal message payload: %w", err)
	}

	headers := []kafkago.Header{
		{Key: HeaderEventID, Value: []byte(uuid.NewString())},
		{Key: HeaderEventType, Value: []byte(b.eventType)},
		{Key: HeaderContentType, Value: []byte("application/json")},
		{Key: HeaderProducedAt, Value: []byte(time.Now().UTC().Format(time.RFC3339))},
	}
	if b.source != "" {
		headers = append(headers, kafkago.Header{Key: HeaderSource, Value: []byte(b.source)})
	}
	headers = append(headers, b.headers...)

	return kafkago.Message{
		Topic:   b.topic,
		Key:     b.key,
		Value:   value,
		Headers: headers,
	}, nil
}

// HeaderValue returns the value of the named header, or "" if absent.
func HeaderValue(msg kafkago.Message, key string) string {
	for _, h := range msg.Headers {
		if h.Key == key {
			return string(h.Value)
		}
	}
	return ""
}

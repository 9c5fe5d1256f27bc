package events

import (
	"context"
	"time"

	"github.com/AnshuShetty/HotelManagementBackend/pkg/kafka"
	"github.com/AnshuShetty/HotelManagementBackend/pkg/logger"
	"github.com/AnshuShetty/HotelManagementBackend/pkg/model"
)

const (
	Topic = "hotel.bookings"

	TypeBookingCreated   = "booking.created"
	TypeBookingCancelled = "booking.cancelled"

	source = "booking-service"
)

// BookingEvent is the wire payload for booking lifecycle notifications.
type BookingEvent struct {
	BookingID  string    `json:"booking_id"`
	UserID     string    `json:"user_id"`
	RoomID     string    `json:"room_id"`
	CheckIn    time.Time `json:"check_in"`
	CheckOut   time.Time `json:"check_out"`
	TotalPrice float64   `json:"total_price"`
	Status     string    `json:"status"`
	OccurredAt time.Time `json:"occurred_at"`
}

// Publisher emits booking lifecycle events. Publishing is best-effort: the
// booking write has already committed, so failures are logged, never returned
// to the caller.
type Publisher interface {
	BookingCreated(ctx context.Context, booking *model.Booking)
	BookingCancelled(ctx context.Context, booking *model.Booking)
}

type kafkaPublisher struct {
	producer *kafka.Producer
	log      *logger.Logger
}

func NewKafkaPublisher(producer *kafka.Producer, log *logger.Logger) Publisher {
	return &kafkaPublisher{
		producer: producer,
		log:      log,
	}
}

func (p *kafkaPublisher) BookingCreated(ctx context.Context, booking *model.Booking) {
	p.publish(ctx, TypeBookingCreated, booking)
}

func (p *kafkaPublisher) BookingCancelled(ctx context.Context, booking *model.Booking) {
	p.publish(ctx, TypeBookingCancelled, booking)
}

func (p *kafkaPublisher) publish(ctx context.Context, eventType string, booking *model.Booking) {
	event := BookingEvent{
		BookingID:  booking.ID,
		UserID:     booking.UserID,
		RoomID:     booking.RoomID,
		CheckIn:    booking.CheckIn,
		CheckOut:   booking.CheckOut,
		TotalPrice: booking.TotalPrice,
		Status:     string(booking.Status),
		OccurredAt: time.Now().UTC(),
	}

	// Keyed by room so events for one room stay ordered.
	msg, err := kafka.NewMessage(Topic).
		WithKey(booking.RoomID).
		WithEventType(eventType).
		WithSource(source).
		WithPayload(event).
		Build()
	if err != nil {
		p.log.Error("Failed to build booking event", "event_type", eventType, "booking_id", booking.ID, "error", err)
		return
	}

	if err := p.producer.Publish(ctx, msg); err != nil {
		p.log.Error("Failed to publish booking event", "event_type", eventType, "booking_id", booking.ID, "error", err)
	}
}

// NoopPublisher drops events. Used when the event stream is disabled.
type NoopPublisher struct{}

func (NoopPublisher) BookingCreated(ctx context.Context, booking *model.Booking)   {}
func (NoopPublisher) BookingCancelled(ctx context.Context, booking *model.Booking) {}

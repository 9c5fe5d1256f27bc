package main

import (
	"context"
	"encoding/json"
	"os"
	"os/signal"
	"syscall"

	kafkago "github.com/segmentio/kafka-go"

	"github.com/AnshuShetty/HotelManagementBackend/internal/bookings/events"
	"github.com/AnshuShetty/HotelManagementBackend/pkg/config"
	"github.com/AnshuShetty/HotelManagementBackend/pkg/kafka"
	kafka_config "github.com/AnshuShetty/HotelManagementBackend/pkg/kafka/config"
)

const (
	ServiceName   = "booking-events-worker"
	consumerGroup = "booking-events-worker"
)

// The worker tails the booking event stream. Today it materializes the
// events into the log; downstream consumers (notifications, analytics)
// plug in the same way.
func main() {
	cfg := config.Load(ServiceName)

	kafkaCfg := kafka_config.Load()
	if !kafkaCfg.Enabled {
		cfg.Log.Fatal("Kafka is disabled, nothing to consume. Set KAFKA_ENABLED=true")
	}

	consumer := kafka.NewConsumer(kafkaCfg, events.Topic, consumerGroup, handleEvent(cfg), cfg.Log)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- consumer.Run(ctx)
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-done:
		if err != nil {
			cfg.Log.Fatal("Consumer stopped with error", "error", err)
		}
	case sig := <-shutdown:
		cfg.Log.Info("Shutdown signal received", "signal", sig)
		cancel()
		if err := consumer.Close(); err != nil {
			cfg.Log.Error("Failed to close consumer", "error", err)
		}
		<-done
	}

	cfg.Log.Info("Worker stopped")
}

func handleEvent(cfg *config.Config) kafka.MessageHandler {
	return func(ctx context.Context, msg kafkago.Message) error {
		var event events.BookingEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			return err
		}

		cfg.Log.Info("Booking event received",
			"event_type", kafka.HeaderValue(msg, "event-type"),
			"event_id", kafka.HeaderValue(msg, "event-id"),
			"booking_id", event.BookingID,
			"room_id", event.RoomID,
			"status", event.Status,
			"occurred_at", event.OccurredAt,
		)
		return nil
	}
}

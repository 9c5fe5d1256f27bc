package main

import (
	"github.com/AnshuShetty/HotelManagementBackend/internal/bookings/events"
	bookingshandler "github.com/AnshuShetty/HotelManagementBackend/internal/bookings/handler"
	bookingsrepository "github.com/AnshuShetty/HotelManagementBackend/internal/bookings/repository"
	bookingsservice "github.com/AnshuShetty/HotelManagementBackend/internal/bookings/service"
	bookingsvalidator "github.com/AnshuShetty/HotelManagementBackend/internal/bookings/validator"
	contacthandler "github.com/AnshuShetty/HotelManagementBackend/internal/contact/handler"
	contactrepository "github.com/AnshuShetty/HotelManagementBackend/internal/contact/repository"
	contactservice "github.com/AnshuShetty/HotelManagementBackend/internal/contact/service"
	roomshandler "github.com/AnshuShetty/HotelManagementBackend/internal/rooms/handler"
	roomsrepository "github.com/AnshuShetty/HotelManagementBackend/internal/rooms/repository"
	roomsservice "github.com/AnshuShetty/HotelManagementBackend/internal/rooms/service"
	roomsvalidator "github.com/AnshuShetty/HotelManagementBackend/internal/rooms/validator"
	usershandler "github.com/AnshuShetty/HotelManagementBackend/internal/users/handler"
	usersrepository "github.com/AnshuShetty/HotelManagementBackend/internal/users/repository"
	usersservice "github.com/AnshuShetty/HotelManagementBackend/internal/users/service"
	usersvalidator "github.com/AnshuShetty/HotelManagementBackend/internal/users/validator"
	"github.com/AnshuShetty/HotelManagementBackend/pkg/app"
	"github.com/AnshuShetty/HotelManagementBackend/pkg/config"
	"github.com/AnshuShetty/HotelManagementBackend/pkg/contracts"
	"github.com/AnshuShetty/HotelManagementBackend/pkg/kafka"
	kafka_config "github.com/AnshuShetty/HotelManagementBackend/pkg/kafka/config"
)

const ServiceName = "hotel-api"

func main() {
	cfg := config.Load(ServiceName)
	cfg.SetMongo()

	cfg.Log.Info("Starting hotel API service")
	handlers := initHandlers(cfg)

	serverApp := app.NewApplication(cfg)
	serverApp.SetApp(handlers...)
	serverApp.Run()
}

func initHandlers(cfg *config.Config) []contracts.Handler {
	userRepo := usersrepository.NewMongoUserRepository(cfg)
	userService := usersservice.NewUserService(
		userRepo,
		usersvalidator.NewUserValidator(cfg.Log),
		cfg,
	)

	roomRepo := roomsrepository.NewMongoRoomRepository(cfg)
	roomService := roomsservice.NewRoomService(
		roomRepo,
		roomsvalidator.NewRoomValidator(cfg.Log),
		cfg,
	)

	publisher := initPublisher(cfg)
	bookingService := bookingsservice.NewBookingService(
		bookingsrepository.NewMongoBookingRepository(cfg),
		bookingsrepository.NewRoomLockRepository(cfg),
		roomRepo,
		bookingsvalidator.NewBookingValidator(cfg.Log),
		publisher,
		cfg,
	)

	contactService := contactservice.NewContactService(
		contactrepository.NewMongoContactRepository(cfg),
		cfg,
	)

	cfg.Log.Info("Services initialized", "database", cfg.MongoDatabaseName)

	return []contracts.Handler{
		usershandler.NewUserHandler(userService, cfg.Log),
		roomshandler.NewRoomHandler(roomService, cfg.Log),
		bookingshandler.NewBookingHandler(bookingService, cfg.Log),
		contacthandler.NewContactHandler(contactService, cfg.Log),
	}
}

func initPublisher(cfg *config.Config) events.Publisher {
	kafkaCfg := kafka_config.Load()
	if !kafkaCfg.Enabled {
		cfg.Log.Info("Kafka disabled, booking events will not be published")
		return events.NoopPublisher{}
	}

	producer := kafka.NewProducer(kafkaCfg, cfg.Log)
	cfg.Log.Info("Kafka producer initialized", "brokers", kafkaCfg.Brokers)
	return events.NewKafkaPublisher(producer, cfg.Log)
}

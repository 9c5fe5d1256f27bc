package main

import (
	"context"
	"time"

	migrations "github.com/AnshuShetty/HotelManagementBackend/internal/migrations/mongo"
	"github.com/AnshuShetty/HotelManagementBackend/pkg/config"
)

const ServiceName = "migrate"

func main() {
	cfg := config.Load(ServiceName)
	cfg.SetMongo()
	defer cfg.Client.GracefulShutdown()

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	if err := migrations.RunMigration(ctx, cfg.Client.Mongo, cfg.MongoDatabaseName); err != nil {
		cfg.Log.Fatal("Migration failed", "error", err)
	}

	cfg.Log.Info("Migrations completed", "database", cfg.MongoDatabaseName)
}

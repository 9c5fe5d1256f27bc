package config

import "time"

const (
	DefaultMongoURI          = "mongodb://localhost:27017"
	DefaultMongoDatabaseName = "hotel"
	DefaultMongoConnTimeout  = 10 * time.Second

	DefaultPort = "8080"

	DefaultLogLevel = "info"

	DefaultJWTExpiry = 24 * time.Hour

	// Hotel policy: guests check in at 14:00 and check out at 11:00,
	// regardless of the time-of-day supplied by the caller.
	DefaultCheckInHour  = 14
	DefaultCheckOutHour = 11

	DefaultBookingLockTTL = 10 * time.Second

	DefaultRateLimitRequests = 10
	DefaultRateLimitWindow   = 1 * time.Minute

	DefaultRequestTimeout = 30 * time.Second
	DefaultIdempotencyTTL = 24 * time.Hour
	DefaultMaxRequestSize = 1 * 1024 * 1024 // 1MB

	DefaultReadTimeout     = 15 * time.Second
	DefaultWriteTimeout    = 15 * time.Second
	DefaultIdleTimeout     = 60 * time.Second
	DefaultShutdownTimeout = 30 * time.Second

	DefaultPaginationLimit = 100
)

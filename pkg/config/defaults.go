package config

import "time"

const (
	DefaultMongoURI          = "mongodb://localhost:27017"
	DefaultMongoDatabaseName = "parkeo"
	DefaultMongoConnTimeout  = 10 * time.Second

	DefaultPort     = "8080"
	DefaultLogLevel = "info"

	DefaultRateLimitRequests = 30
	DefaultRateLimitWindow   = 1 * time.Minute

	DefaultRequestTimeout = 30 * time.Second
	DefaultIdempotencyTTL = 24 * time.Hour
	DefaultMaxRequestSize = 5 * 1024 * 1024 // documents ride on create requests

	DefaultReadTimeout     = 15 * time.Second
	DefaultWriteTimeout    = 15 * time.Second
	DefaultIdleTimeout     = 60 * time.Second
	DefaultShutdownTimeout = 30 * time.Second

	// Inventory and admission rules.
	DefaultSpaceCount            = 20
	DefaultMaxReservationDays    = 7
	DefaultMaxAdvanceMonths      = 1
	DefaultDocumentThresholdDays = 2
	DefaultAdmissionLockTTL      = 10 * time.Second

	DefaultKafkaTopic                = "reservation-events"
	DefaultKafkaProducerMaxAttempts  = 3
	DefaultKafkaProducerBatchTimeout = 100 * time.Millisecond

	DefaultPaginationLimit = 100
)

package config

const (
	EnvPort      = "PORT"
	EnvLogLevel  = "LOG_LEVEL"
	EnvLogFormat = "LOG_FORMAT"

	EnvRateLimitRequests = "RATE_LIMIT_REQUESTS"
	EnvRateLimitWindow   = "RATE_LIMIT_WINDOW"

	EnvRequestTimeout = "REQUEST_TIMEOUT"
	EnvIdempotencyTTL = "IDEMPOTENCY_TTL"
	EnvMaxRequestSize = "MAX_REQUEST_SIZE"
	EnvCORSOrigins    = "CORS_ALLOWED_ORIGINS"

	EnvReadTimeout     = "READ_TIMEOUT"
	EnvWriteTimeout    = "WRITE_TIMEOUT"
	EnvIdleTimeout     = "IDLE_TIMEOUT"
	EnvShutdownTimeout = "SHUTDOWN_TIMEOUT"

	EnvSlotDayStart       = "SLOT_DAY_START"
	EnvSlotDayEnd         = "SLOT_DAY_END"
	EnvSlotInterval       = "SLOT_INTERVAL"
	EnvCapacityPerSlot    = "CAPACITY_PER_SLOT"
	EnvBookingHorizonDays = "BOOKING_HORIZON_DAYS"
	EnvTimeZone           = "TIME_ZONE"

	EnvFaultRate       = "FAULT_RATE"
	EnvSimulateLatency = "SIMULATE_LATENCY"

	EnvStoreBackend      = "STORE_BACKEND"
	EnvMongoURI          = "MONGO_URI"
	EnvMongoDatabaseName = "MONGO_DATABASE_NAME"
	EnvMongoConnTimeout  = "MONGO_CONN_TIMEOUT"

	EnvRedisURL = "REDIS_URL"

	EnvKafkaEnabled       = "KAFKA_ENABLED"
	EnvBookingEventsTopic = "TABLETIME_BOOKING_EVENTS_TOPIC"

	EnvOtelEnabled     = "OTEL_ENABLED"
	EnvOtelEndpoint    = "OTEL_EXPORTER_OTLP_ENDPOINT"
	EnvOtelSampleRatio = "OTEL_SAMPLING_RATIO"
)

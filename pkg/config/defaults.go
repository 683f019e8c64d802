package config

import "time"

const (
	StoreMemory = "memory"
	StoreMongo  = "mongo"
)

const (
	DefaultPort      = "8080"
	DefaultLogLevel  = "info"
	DefaultLogFormat = "json"

	DefaultRateLimitRequests = 120
	DefaultRateLimitWindow   = 1 * time.Minute

	DefaultRequestTimeout = 30 * time.Second
	DefaultIdempotencyTTL = 24 * time.Hour
	DefaultMaxRequestSize = 64 * 1024 // 64KB

	DefaultReadTimeout     = 15 * time.Second
	DefaultWriteTimeout    = 15 * time.Second
	DefaultIdleTimeout     = 60 * time.Second
	DefaultShutdownTimeout = 30 * time.Second

	DefaultSlotDayStart       = "17:00"
	DefaultSlotDayEnd         = "22:00"
	DefaultSlotInterval       = 30 * time.Minute
	DefaultCapacityPerSlot    = 10
	DefaultBookingHorizonDays = 0
	DefaultTimeZone           = "UTC"

	DefaultFaultRate       = 0.08
	DefaultSimulateLatency = false

	DefaultStoreBackend      = StoreMemory
	DefaultMongoURI          = "mongodb://localhost:27017"
	DefaultMongoDatabaseName = "tabletime"
	DefaultMongoConnTimeout  = 10 * time.Second

	DefaultKafkaEnabled       = false
	DefaultBookingEventsTopic = "tabletime.booking-events"

	DefaultOtelEnabled     = false
	DefaultOtelEndpoint    = "localhost:4317"
	DefaultOtelSampleRatio = 1.0
)

// Per-route delays used when SIMULATE_LATENCY is on. They mirror the
// response times the browser UI was built against.
const (
	LatencyHealth       = 200 * time.Millisecond
	LatencyRestaurants  = 300 * time.Millisecond
	LatencyAvailability = 250 * time.Millisecond
	LatencyCreate       = 800 * time.Millisecond
	LatencyDefault      = 300 * time.Millisecond
)

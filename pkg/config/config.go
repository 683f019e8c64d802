package config

import (
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"

	httputil "tabletime/pkg/http"
	"tabletime/pkg/logger"
	"tabletime/pkg/model"
)

type Config struct {
	ServiceName string
	Port        string

	RateLimitRequests int
	RateLimitWindow   time.Duration

	RequestTimeout time.Duration
	IdempotencyTTL time.Duration
	MaxRequestSize int
	CORSOrigins    []string

	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration

	SlotDayStart       string
	SlotDayEnd         string
	SlotInterval       time.Duration
	CapacityPerSlot    int
	BookingHorizonDays int
	TimeZone           string

	FaultRate       float64
	SimulateLatency bool

	StoreBackend      string
	MongoURI          string
	MongoDatabaseName string
	MongoConnTimeout  time.Duration

	RedisURL string

	KafkaEnabled       bool
	BookingEventsTopic string

	OtelEnabled     bool
	OtelEndpoint    string
	OtelSampleRatio float64

	Log *logger.Logger
}

func Load(serviceName string) *Config {
	cfg := &Config{
		ServiceName: serviceName,
		Port:        getEnvStr(EnvPort, DefaultPort),

		RateLimitRequests: getEnvNum(EnvRateLimitRequests, DefaultRateLimitRequests),
		RateLimitWindow:   getEnvDuration(EnvRateLimitWindow, DefaultRateLimitWindow),

		RequestTimeout: getEnvDuration(EnvRequestTimeout, DefaultRequestTimeout),
		IdempotencyTTL: getEnvDuration(EnvIdempotencyTTL, DefaultIdempotencyTTL),
		MaxRequestSize: getEnvNum(EnvMaxRequestSize, DefaultMaxRequestSize),
		CORSOrigins:    getEnvList(EnvCORSOrigins),

		ReadTimeout:     getEnvDuration(EnvReadTimeout, DefaultReadTimeout),
		WriteTimeout:    getEnvDuration(EnvWriteTimeout, DefaultWriteTimeout),
		IdleTimeout:     getEnvDuration(EnvIdleTimeout, DefaultIdleTimeout),
		ShutdownTimeout: getEnvDuration(EnvShutdownTimeout, DefaultShutdownTimeout),

		SlotDayStart:       getEnvStr(EnvSlotDayStart, DefaultSlotDayStart),
		SlotDayEnd:         getEnvStr(EnvSlotDayEnd, DefaultSlotDayEnd),
		SlotInterval:       getEnvDuration(EnvSlotInterval, DefaultSlotInterval),
		CapacityPerSlot:    getEnvNum(EnvCapacityPerSlot, DefaultCapacityPerSlot),
		BookingHorizonDays: getEnvNum(EnvBookingHorizonDays, DefaultBookingHorizonDays),
		TimeZone:           getEnvStr(EnvTimeZone, DefaultTimeZone),

		FaultRate:       getEnvFloat(EnvFaultRate, DefaultFaultRate),
		SimulateLatency: getEnvBool(EnvSimulateLatency, DefaultSimulateLatency),

		StoreBackend:      getEnvStr(EnvStoreBackend, DefaultStoreBackend),
		MongoURI:          getEnvStr(EnvMongoURI, DefaultMongoURI),
		MongoDatabaseName: getEnvStr(EnvMongoDatabaseName, DefaultMongoDatabaseName),
		MongoConnTimeout:  getEnvDuration(EnvMongoConnTimeout, DefaultMongoConnTimeout),

		RedisURL: getEnvStr(EnvRedisURL, ""),

		KafkaEnabled:       getEnvBool(EnvKafkaEnabled, DefaultKafkaEnabled),
		BookingEventsTopic: getEnvStr(EnvBookingEventsTopic, DefaultBookingEventsTopic),

		OtelEnabled:     getEnvBool(EnvOtelEnabled, DefaultOtelEnabled),
		OtelEndpoint:    getEnvStr(EnvOtelEndpoint, DefaultOtelEndpoint),
		OtelSampleRatio: getEnvFloat(EnvOtelSampleRatio, DefaultOtelSampleRatio),

		Log: logger.New(logger.Config{
			Level:     getEnvStr(EnvLogLevel, DefaultLogLevel),
			Format:    getEnvStr(EnvLogFormat, DefaultLogFormat),
			AddSource: true,
			Service:   serviceName,
		}),
	}

	if err := cfg.Validate(); err != nil {
		cfg.Log.Fatal(err.Error())
	}
	cfg.LogConfiguration()
	return cfg
}

func (cfg *Config) Validate() error {
	var errors []string

	if port, err := strconv.Atoi(cfg.Port); err != nil || port < 1 || port > 65535 {
		errors = append(errors, fmt.Sprintf("Port must be between 1 and 65535, got: %s", cfg.Port))
	}

	start, startErr := model.ParseTimeOfDay(cfg.SlotDayStart)
	if startErr != nil {
		errors = append(errors, fmt.Sprintf("SlotDayStart must be in HH:MM format (00:00-23:59), got: %s", cfg.SlotDayStart))
	}
	end, endErr := model.ParseTimeOfDay(cfg.SlotDayEnd)
	if endErr != nil {
		errors = append(errors, fmt.Sprintf("SlotDayEnd must be in HH:MM format (00:00-23:59), got: %s", cfg.SlotDayEnd))
	}
	if startErr == nil && endErr == nil && end < start {
		errors = append(errors, fmt.Sprintf("SlotDayEnd (%s) must not be before SlotDayStart (%s)", cfg.SlotDayEnd, cfg.SlotDayStart))
	}
	if cfg.SlotInterval < time.Minute || cfg.SlotInterval%time.Minute != 0 {
		errors = append(errors, fmt.Sprintf("SlotInterval must be a positive whole number of minutes, got: %s", cfg.SlotInterval))
	}
	if cfg.CapacityPerSlot <= 0 {
		errors = append(errors, fmt.Sprintf("CapacityPerSlot must be positive, got: %d", cfg.CapacityPerSlot))
	}
	if cfg.BookingHorizonDays < 0 {
		errors = append(errors, fmt.Sprintf("BookingHorizonDays cannot be negative, got: %d", cfg.BookingHorizonDays))
	}
	if _, err := time.LoadLocation(cfg.TimeZone); err != nil {
		errors = append(errors, fmt.Sprintf("TimeZone must be an IANA zone name, got: %s", cfg.TimeZone))
	}

	if cfg.FaultRate < 0 || cfg.FaultRate > 1 {
		errors = append(errors, fmt.Sprintf("FaultRate must be between 0 and 1, got: %v", cfg.FaultRate))
	}

	switch cfg.StoreBackend {
	case StoreMemory:
	case StoreMongo:
		if cfg.MongoURI == "" {
			errors = append(errors, "MongoURI cannot be empty")
		} else if !regexp.MustCompile(`^mongodb(\+srv)?://`).MatchString(cfg.MongoURI) {
			errors = append(errors, fmt.Sprintf("MongoURI must start with 'mongodb://' or 'mongodb+srv://', got: %s", redactURI(cfg.MongoURI)))
		}
		if cfg.MongoDatabaseName == "" {
			errors = append(errors, "MongoDatabaseName cannot be empty")
		}
		if cfg.MongoConnTimeout <= 0 {
			errors = append(errors, fmt.Sprintf("MongoConnTimeout must be positive, got: %s", cfg.MongoConnTimeout))
		}
	default:
		errors = append(errors, fmt.Sprintf("StoreBackend must be one of [%s, %s], got: %s", StoreMemory, StoreMongo, cfg.StoreBackend))
	}

	if cfg.RedisURL != "" && !strings.HasPrefix(cfg.RedisURL, "redis://") && !strings.HasPrefix(cfg.RedisURL, "rediss://") {
		errors = append(errors, fmt.Sprintf("RedisURL must start with 'redis://' or 'rediss://', got: %s", redactURI(cfg.RedisURL)))
	}
	if cfg.KafkaEnabled && cfg.BookingEventsTopic == "" {
		errors = append(errors, "BookingEventsTopic cannot be empty when Kafka is enabled")
	}
	if cfg.OtelSampleRatio < 0 || cfg.OtelSampleRatio > 1 {
		errors = append(errors, fmt.Sprintf("OtelSampleRatio must be between 0 and 1, got: %v", cfg.OtelSampleRatio))
	}

	if cfg.RateLimitWindow <= 0 {
		errors = append(errors, fmt.Sprintf("RateLimitWindow must be positive, got: %s", cfg.RateLimitWindow))
	}
	if cfg.RequestTimeout <= 0 {
		errors = append(errors, fmt.Sprintf("RequestTimeout must be positive, got: %s", cfg.RequestTimeout))
	}
	if cfg.IdempotencyTTL <= 0 {
		errors = append(errors, fmt.Sprintf("IdempotencyTTL must be positive, got: %s", cfg.IdempotencyTTL))
	}
	if cfg.ReadTimeout <= 0 {
		errors = append(errors, fmt.Sprintf("ReadTimeout must be positive, got: %s", cfg.ReadTimeout))
	}
	if cfg.WriteTimeout <= 0 {
		errors = append(errors, fmt.Sprintf("WriteTimeout must be positive, got: %s", cfg.WriteTimeout))
	}
	if cfg.IdleTimeout <= 0 {
		errors = append(errors, fmt.Sprintf("IdleTimeout must be positive, got: %s", cfg.IdleTimeout))
	}
	if cfg.ShutdownTimeout <= 0 {
		errors = append(errors, fmt.Sprintf("ShutdownTimeout must be positive, got: %s", cfg.ShutdownTimeout))
	}
	if cfg.RateLimitRequests <= 0 {
		errors = append(errors, fmt.Sprintf("RateLimitRequests must be positive, got: %d", cfg.RateLimitRequests))
	}
	if cfg.MaxRequestSize <= 0 {
		errors = append(errors, fmt.Sprintf("MaxRequestSize must be positive, got: %d", cfg.MaxRequestSize))
	}

	if len(errors) > 0 {
		errMsg := "Configuration validation failed:\n"
		for i, err := range errors {
			errMsg += fmt.Sprintf("  %d. %s\n", i+1, err)
		}
		return fmt.Errorf("%s", errMsg)
	}

	return nil
}

// SlotTemplate assumes Validate has passed; unparsable bounds collapse to
// an empty template.
func (cfg *Config) SlotTemplate() model.SlotTemplate {
	start, err := model.ParseTimeOfDay(cfg.SlotDayStart)
	if err != nil {
		return model.SlotTemplate{}
	}
	end, err := model.ParseTimeOfDay(cfg.SlotDayEnd)
	if err != nil {
		return model.SlotTemplate{}
	}
	return model.SlotTemplate{Start: start, End: end, Interval: cfg.SlotInterval}
}

func (cfg *Config) Location() *time.Location {
	loc, err := time.LoadLocation(cfg.TimeZone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// Latency is nil unless SIMULATE_LATENCY is set.
func (cfg *Config) Latency() httputil.Latency {
	if !cfg.SimulateLatency {
		return nil
	}
	return httputil.Latency{
		httputil.OpHealth:       LatencyHealth,
		httputil.OpRestaurants:  LatencyRestaurants,
		httputil.OpAvailability: LatencyAvailability,
		httputil.OpCreate:       LatencyCreate,
		httputil.OpSearch:       LatencyDefault,
		httputil.OpCancel:       LatencyDefault,
		httputil.OpReschedule:   LatencyDefault,
	}
}

func (cfg *Config) LogConfiguration() {
	cfg.Log.Info("Configuration loaded successfully",
		"port", cfg.Port,
		"rate_limit_requests", cfg.RateLimitRequests,
		"rate_limit_window", cfg.RateLimitWindow,
		"request_timeout", cfg.RequestTimeout,
		"idempotency_ttl", cfg.IdempotencyTTL,
		"max_request_size", cfg.MaxRequestSize,
		"cors_origins", cfg.CORSOrigins,
		"read_timeout", cfg.ReadTimeout,
		"write_timeout", cfg.WriteTimeout,
		"idle_timeout", cfg.IdleTimeout,
		"shutdown_timeout", cfg.ShutdownTimeout,
		"slot_day_start", cfg.SlotDayStart,
		"slot_day_end", cfg.SlotDayEnd,
		"slot_interval", cfg.SlotInterval,
		"capacity_per_slot", cfg.CapacityPerSlot,
		"booking_horizon_days", cfg.BookingHorizonDays,
		"time_zone", cfg.TimeZone,
		"fault_rate", cfg.FaultRate,
		"simulate_latency", cfg.SimulateLatency,
		"store_backend", cfg.StoreBackend,
		"mongo_uri", redactURI(cfg.MongoURI),
		"mongo_database", cfg.MongoDatabaseName,
		"mongo_conn_timeout", cfg.MongoConnTimeout,
		"redis_url", redactURI(cfg.RedisURL),
		"kafka_enabled", cfg.KafkaEnabled,
		"booking_events_topic", cfg.BookingEventsTopic,
		"otel_enabled", cfg.OtelEnabled,
		"otel_endpoint", cfg.OtelEndpoint,
		"otel_sample_ratio", cfg.OtelSampleRatio,
	)
}

var credentialRegex = regexp.MustCompile(`^([a-z+]+://)[^@/]+@`)

func redactURI(uri string) string {
	return credentialRegex.ReplaceAllString(uri, "${1}***:***@")
}

func getEnvStr(key, fallback string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return fallback
}

func getEnvNum(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}

func getEnvList(key string) []string {
	value := os.Getenv(key)
	if value == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

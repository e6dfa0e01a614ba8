package config

import (
	"errors"
	"fmt"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/spf13/viper"
)

const eventDateLayout = "2006-01-02"

type (
	Tasks struct {
		StatusMetricsInterval time.Duration
	}

	HTTPServer struct {
		Port             string
		LogLevel         string
		RequestTimeout   time.Duration // middleware timeout
		RateLimiterQPS   int           // rate limiter refill per second
		RateLimiterBurst int           // rate limiter bucket capacity
		PprofEnabled     bool
		PprofPort        string
	}

	Database struct {
		Host     string
		Port     string
		User     string
		Password string
		DBName   string
		SSLMode  string
		MaxConns int32
	}

	Orders struct {
		AdminCode         string
		EventDate         time.Time // midnight of the event day in Location
		Location          *time.Location
		AllowTestOrders   bool
		StatusPolicy      string
		NumberMaxAttempts int
	}

	Kafka struct {
		PortHealthcheck string
		Brokers         string
		Topic           string
		ConsumerGroup   string
		Sarama          Sarama
		Handlers        KafkaHandlers
	}

	Sarama struct {
		Version                   string
		ConsumerOffsetsAutocommit bool
	}

	KafkaHandlers struct {
		OrderStatusChanged OrderStatusChanged
	}

	OrderStatusChanged struct {
		ProcessTimeout time.Duration
	}

	Config struct {
		Tasks    Tasks
		Server   HTTPServer
		Database Database
		Orders   Orders
		Kafka    Kafka
	}
)

// Enabled reports whether any broker is configured.
func (k Kafka) Enabled() bool {
	return len(k.BrokerList()) > 0
}

func (k Kafka) BrokerList() []string {
	var brokers []string
	for _, b := range strings.Split(k.Brokers, ",") {
		if b = strings.TrimSpace(b); b != "" {
			brokers = append(brokers, b)
		}
	}
	return brokers
}

func Load() (*Config, error) {
	v := viper.New()
	v.AutomaticEnv()
	setDefaults(v)

	cfg, err := build(v)
	if err != nil {
		return nil, fmt.Errorf("environment loading: %w", err)
	}

	if err := validateConfig(cfg); err != nil {
		return nil, fmt.Errorf("validation: %w", err)
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("PORT", "8080")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("MIDDLEWARE_REQUEST_TIMEOUT", "5s")
	v.SetDefault("MIDDLEWARE_RATE_LIMIT_QPS", 50)
	v.SetDefault("MIDDLEWARE_RATE_LIMIT_BURST", 100)
	v.SetDefault("PPROF_ENABLED", false)

	v.SetDefault("POSTGRES_PORT", "5432")
	v.SetDefault("POSTGRES_SSLMODE", "disable")
	v.SetDefault("POSTGRES_MAX_CONNS", 10)

	v.SetDefault("EVENT_DATE", "2026-02-14")
	v.SetDefault("EVENT_TIMEZONE", "America/New_York")
	v.SetDefault("ALLOW_TEST_ORDERS", false)
	v.SetDefault("ORDER_STATUS_POLICY", "permissive")
	v.SetDefault("ORDER_NUMBER_MAX_ATTEMPTS", 5)

	v.SetDefault("BACKGROUND_STATUS_METRICS_INTERVAL", "30s")

	v.SetDefault("KAFKA_TOPIC", "order.status.changed")
	v.SetDefault("KAFKA_CONSUMER_GROUP", "lionhearts-notifications")
	v.SetDefault("KAFKA_HTTP_HEALTHCHECK_PORT", "8081")
	v.SetDefault("KAFKA_SARAMA_VERSION", "3.6.0")
	v.SetDefault("KAFKA_SARAMA_OFFSETS_AUTOCOMMIT", true)
	v.SetDefault("KAFKA_HANDLER_ORDER_STATUS_CHANGED_PROCESS_TIMEOUT", "5s")
}

func build(v *viper.Viper) (*Config, error) {
	requestTimeout, err := getDuration(v, "MIDDLEWARE_REQUEST_TIMEOUT")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	statusMetricsInterval, err := getDuration(v, "BACKGROUND_STATUS_METRICS_INTERVAL")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	processTimeout, err := getDuration(v, "KAFKA_HANDLER_ORDER_STATUS_CHANGED_PROCESS_TIMEOUT")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	location, err := time.LoadLocation(v.GetString("EVENT_TIMEZONE"))
	if err != nil {
		return nil, fmt.Errorf("loading config: invalid EVENT_TIMEZONE=%q: %w", v.GetString("EVENT_TIMEZONE"), err)
	}

	eventDate, err := time.ParseInLocation(eventDateLayout, v.GetString("EVENT_DATE"), location)
	if err != nil {
		return nil, fmt.Errorf("loading config: invalid EVENT_DATE=%q: %w", v.GetString("EVENT_DATE"), err)
	}

	return &Config{
		Tasks: Tasks{
			StatusMetricsInterval: statusMetricsInterval,
		},
		Server: HTTPServer{
			Port:             v.GetString("PORT"),
			LogLevel:         v.GetString("LOG_LEVEL"),
			RequestTimeout:   requestTimeout,
			RateLimiterQPS:   v.GetInt("MIDDLEWARE_RATE_LIMIT_QPS"),
			RateLimiterBurst: v.GetInt("MIDDLEWARE_RATE_LIMIT_BURST"),
			PprofEnabled:     v.GetBool("PPROF_ENABLED"),
			PprofPort:        v.GetString("PPROF_PORT"),
		},
		Database: Database{
			Host:     v.GetString("POSTGRES_HOST"),
			Port:     v.GetString("POSTGRES_PORT"),
			User:     v.GetString("POSTGRES_USER"),
			Password: v.GetString("POSTGRES_PASSWORD"),
			DBName:   v.GetString("POSTGRES_DB"),
			SSLMode:  v.GetString("POSTGRES_SSLMODE"),
			MaxConns: v.GetInt32("POSTGRES_MAX_CONNS"),
		},
		Orders: Orders{
			AdminCode:         v.GetString("ADMIN_CODE"),
			EventDate:         eventDate,
			Location:          location,
			AllowTestOrders:   v.GetBool("ALLOW_TEST_ORDERS"),
			StatusPolicy:      v.GetString("ORDER_STATUS_POLICY"),
			NumberMaxAttempts: v.GetInt("ORDER_NUMBER_MAX_ATTEMPTS"),
		},
		Kafka: Kafka{
			Brokers:         v.GetString("KAFKA_BROKERS"),
			Topic:           v.GetString("KAFKA_TOPIC"),
			ConsumerGroup:   v.GetString("KAFKA_CONSUMER_GROUP"),
			PortHealthcheck: v.GetString("KAFKA_HTTP_HEALTHCHECK_PORT"),
			Sarama: Sarama{
				Version:                   v.GetString("KAFKA_SARAMA_VERSION"),
				ConsumerOffsetsAutocommit: v.GetBool("KAFKA_SARAMA_OFFSETS_AUTOCOMMIT"),
			},
			Handlers: KafkaHandlers{
				OrderStatusChanged: OrderStatusChanged{
					ProcessTimeout: processTimeout,
				},
			},
		},
	}, nil
}

func validateConfig(cfg *Config) error {
	if cfg.Server.Port == "" {
		return errors.New("server port is required (set via PORT env variable)")
	}
	if cfg.Server.RequestTimeout <= 0 {
		return errors.New("MIDDLEWARE_REQUEST_TIMEOUT must be positive")
	}
	if cfg.Server.RateLimiterQPS <= 0 {
		return errors.New("MIDDLEWARE_RATE_LIMIT_QPS must be positive")
	}
	if cfg.Server.RateLimiterBurst <= 0 {
		return errors.New("MIDDLEWARE_RATE_LIMIT_BURST must be positive")
	}
	if cfg.Server.PprofPort == "" && cfg.Server.PprofEnabled {
		return errors.New("PprofPort is required (set via PPROF_PORT env variable)")
	}

	if cfg.Database.Host == "" {
		return errors.New("POSTGRES_HOST is required")
	}
	if cfg.Database.User == "" {
		return errors.New("POSTGRES_USER is required")
	}
	if cfg.Database.Password == "" {
		return errors.New("POSTGRES_PASSWORD is required")
	}
	if cfg.Database.DBName == "" {
		return errors.New("POSTGRES_DB is required")
	}

	if cfg.Orders.AdminCode == "" {
		return errors.New("ADMIN_CODE is required")
	}
	if cfg.Orders.NumberMaxAttempts < 1 {
		return errors.New("ORDER_NUMBER_MAX_ATTEMPTS must be at least 1")
	}

	if cfg.Tasks.StatusMetricsInterval <= 0 {
		return errors.New("BACKGROUND_STATUS_METRICS_INTERVAL must be positive")
	}

	if cfg.Kafka.Enabled() {
		if cfg.Kafka.Topic == "" {
			return errors.New("KAFKA_TOPIC is required")
		}
		if cfg.Kafka.Sarama.Version == "" {
			return errors.New("KAFKA_SARAMA_VERSION is required")
		}
	}

	return nil
}

// ValidateConsumer checks the settings the notification worker needs on top of
// the common ones.
func ValidateConsumer(cfg *Config) error {
	if !cfg.Kafka.Enabled() {
		return errors.New("KAFKA_BROKERS is required")
	}
	if cfg.Kafka.ConsumerGroup == "" {
		return errors.New("KAFKA_CONSUMER_GROUP is required")
	}
	if cfg.Kafka.PortHealthcheck == "" {
		return errors.New("KAFKA_HTTP_HEALTHCHECK_PORT is required")
	}
	if cfg.Kafka.Handlers.OrderStatusChanged.ProcessTimeout <= 0 {
		return errors.New("KAFKA_HANDLER_ORDER_STATUS_CHANGED_PROCESS_TIMEOUT must be positive")
	}
	return nil
}

func getDuration(v *viper.Viper, key string) (time.Duration, error) {
	val := v.GetString(key)
	if val == "" {
		return 0, nil
	}

	res, err := time.ParseDuration(val)
	if err != nil {
		return 0, fmt.Errorf("invalid duration format for %s=%q: %w", key, val, err)
	}
	return res, nil
}

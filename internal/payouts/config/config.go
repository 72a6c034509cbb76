package config

import (
	"fmt"
	"time"

	"github.com/cicconee/payouts/internal/platform/config"
)

const envPrefix = "PAYOUTS"

type PayoutsConfig struct {
	Env             string
	GRPCAddr        string
	HTTPAddr        string
	ShutdownTimeout time.Duration
	RequestTimeout  time.Duration
	LogLevel        string
	KafkaBrokers    []string
	EventsTopic     string
	EventsEnabled   bool
	OutboxSize      int
}

// Load reads PAYOUTS_* environment variables over the optional config file
// at path.
func Load(path string) (PayoutsConfig, error) {
	v, err := config.NewEnv(envPrefix, path)
	if err != nil {
		return PayoutsConfig{}, err
	}

	v.SetDefault("env", "dev")
	v.SetDefault("grpc_addr", ":9000")
	v.SetDefault("http_addr", ":8080")
	v.SetDefault("log_level", "info")
	v.SetDefault("kafka_brokers", "localhost:9092")
	v.SetDefault("events_topic", "payouts.payment_requests")
	v.SetDefault("events_enabled", true)
	v.SetDefault("outbox_size", 256)

	cfg := PayoutsConfig{
		Env:             v.GetString("env"),
		GRPCAddr:        v.GetString("grpc_addr"),
		HTTPAddr:        v.GetString("http_addr"),
		ShutdownTimeout: config.Duration(v, "shutdown_timeout", 10*time.Second),
		RequestTimeout:  config.Duration(v, "request_timeout", 30*time.Second),
		LogLevel:        v.GetString("log_level"),
		KafkaBrokers:    config.SplitCSV(v.GetString("kafka_brokers")),
		EventsTopic:     v.GetString("events_topic"),
		EventsEnabled:   v.GetBool("events_enabled"),
		OutboxSize:      v.GetInt("outbox_size"),
	}

	if cfg.GRPCAddr == "" {
		return PayoutsConfig{}, fmt.Errorf("PAYOUTS_GRPC_ADDR cannot be empty")
	}
	if cfg.HTTPAddr == "" {
		return PayoutsConfig{}, fmt.Errorf("PAYOUTS_HTTP_ADDR cannot be empty")
	}
	if cfg.EventsEnabled {
		if len(cfg.KafkaBrokers) == 0 {
			return PayoutsConfig{}, fmt.Errorf("PAYOUTS_KAFKA_BROKERS cannot be empty when events are enabled")
		}
		if cfg.EventsTopic == "" {
			return PayoutsConfig{}, fmt.Errorf("PAYOUTS_EVENTS_TOPIC cannot be empty when events are enabled")
		}
	}
	if cfg.OutboxSize <= 0 {
		cfg.OutboxSize = 256
	}

	return cfg, nil
}

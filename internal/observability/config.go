package observability

import (
	"strings"
	"time"

	"github.com/smallbiznis/invoicefill/internal/config"
)

// Config is the telemetry view of the process configuration.
type Config struct {
	ServiceName string
	Environment string
	Version     string

	LogLevel              string
	LogFormat             string
	LogSamplingInitial    int
	LogSamplingThereafter int
	LogSamplingWindow     time.Duration

	OtelEnabled          bool
	OtelExporterEndpoint string
	OtelExporterProtocol string
	OtelSamplingRatio    float64
}

func LoadConfig(cfg config.Config) Config {
	name := strings.TrimSpace(cfg.AppName)
	if name == "" {
		name = "invoicefill"
	}

	protocol := config.Env("OTEL_EXPORTER_OTLP_PROTOCOL", "grpc")
	protocol = config.Env("OTEL_EXPORTER_OTLP_TRACES_PROTOCOL", protocol)

	return Config{
		ServiceName:           name,
		Environment:           config.Env("DEPLOYMENT_ENV", strings.TrimSpace(cfg.Environment)),
		Version:               config.Env("SERVICE_VERSION", strings.TrimSpace(cfg.AppVersion)),
		LogLevel:              strings.ToLower(config.Env("LOG_LEVEL", "info")),
		LogFormat:             strings.ToLower(config.Env("LOG_FORMAT", "json")),
		LogSamplingInitial:    int(config.EnvInt("LOG_SAMPLING_INITIAL", 0)),
		LogSamplingThereafter: int(config.EnvInt("LOG_SAMPLING_THEREAFTER", 0)),
		LogSamplingWindow:     config.EnvDuration("LOG_SAMPLING_WINDOW", 0),
		OtelEnabled:           config.EnvBool("OTEL_ENABLED", true),
		OtelExporterEndpoint:  config.Env("OTEL_EXPORTER_OTLP_ENDPOINT", strings.TrimSpace(cfg.OTLPEndpoint)),
		OtelExporterProtocol:  strings.ToLower(protocol),
		OtelSamplingRatio:     config.EnvFloat("OTEL_SAMPLING_RATIO", 0.1),
	}
}

// Debug is on for debug level or any development environment.
func (c Config) Debug() bool {
	return c.LogLevel == "debug" || config.IsDevelopment(c.Environment)
}

package observability

import (
	"testing"
	"time"

	"github.com/smallbiznis/invoicefill/internal/config"
	"github.com/stretchr/testify/assert"
)

func TestLoadConfig(t *testing.T) {
	t.Setenv("LOG_LEVEL", " DEBUG ")
	t.Setenv("OTEL_ENABLED", "false")
	t.Setenv("OTEL_EXPORTER_OTLP_TRACES_PROTOCOL", "HTTP")
	t.Setenv("OTEL_SAMPLING_RATIO", "0.5")
	t.Setenv("DEPLOYMENT_ENV", "")
	t.Setenv("SERVICE_VERSION", "")

	cfg := LoadConfig(config.Config{AppName: "", AppVersion: "1.2.3", Environment: "production"})

	assert.Equal(t, "invoicefill", cfg.ServiceName)
	assert.Equal(t, "production", cfg.Environment)
	assert.Equal(t, "1.2.3", cfg.Version)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.False(t, cfg.OtelEnabled)
	assert.Equal(t, "http", cfg.OtelExporterProtocol)
	assert.Equal(t, 0.5, cfg.OtelSamplingRatio)
	assert.True(t, cfg.Debug())
}

func TestDebugFollowsEnvironment(t *testing.T) {
	assert.True(t, Config{Environment: "local", LogLevel: "info"}.Debug())
	assert.False(t, Config{Environment: "production", LogLevel: "info"}.Debug())
}

func TestLoadConfigLogSampling(t *testing.T) {
	t.Setenv("LOG_SAMPLING_INITIAL", "50")
	t.Setenv("LOG_SAMPLING_THEREAFTER", "200")
	t.Setenv("LOG_SAMPLING_WINDOW", "2s")
	t.Setenv("OTEL_EXPORTER_OTLP_TRACES_PROTOCOL", "")
	t.Setenv("OTEL_EXPORTER_OTLP_PROTOCOL", "")

	cfg := LoadConfig(config.Config{AppName: "svc", Environment: "production"})

	assert.Equal(t, 50, cfg.LogSamplingInitial)
	assert.Equal(t, 200, cfg.LogSamplingThereafter)
	assert.Equal(t, 2*time.Second, cfg.LogSamplingWindow)
	assert.Equal(t, "grpc", cfg.OtelExporterProtocol)

	lc := cfg.loggerConfig()
	assert.Equal(t, 50, lc.SamplingInitial)
	assert.Equal(t, 2*time.Second, lc.SamplingWindow)
	assert.False(t, lc.Debug)
}

func TestExporterConfigsShareEndpoint(t *testing.T) {
	cfg := Config{ServiceName: "svc", OtelEnabled: true, OtelExporterEndpoint: "collector:4317", OtelExporterProtocol: "grpc", OtelSamplingRatio: 0.25}

	tc := cfg.tracingConfig()
	mc := cfg.metricsConfig()
	assert.Equal(t, "collector:4317", tc.ExporterEndpoint)
	assert.Equal(t, tc.ExporterEndpoint, mc.ExporterEndpoint)
	assert.Equal(t, 0.25, tc.SamplingRatio)
	assert.True(t, mc.Enabled)
}

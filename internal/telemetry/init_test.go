package telemetry

import (
	"context"
	"testing"

	"vpp-configurator/internal/config"

	"github.com/stretchr/testify/assert"
)

func TestShouldSample(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		draw float64
		want bool
	}{
		{"disabled never samples", Config{Enabled: false, SampleRate: 1}, 0, false},
		{"below rate", Config{Enabled: true, SampleRate: 0.5}, 0.49, true},
		{"at rate", Config{Enabled: true, SampleRate: 0.5}, 0.5, false},
		{"zero rate", Config{Enabled: true, SampleRate: 0}, 0, false},
		{"rate above one is clamped", Config{Enabled: true, SampleRate: 4}, 0.999, true},
		{"negative rate is clamped", Config{Enabled: true, SampleRate: -1}, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ShouldSample(tt.cfg, tt.draw))
		})
	}
}

func TestShouldSample_IndependentOfCallOrder(t *testing.T) {
	on := Config{Enabled: true, SampleRate: 1}
	off := Config{Enabled: false, SampleRate: 1}

	assert.True(t, ShouldSample(on, 0.3))
	assert.False(t, ShouldSample(off, 0.3))
	assert.True(t, ShouldSample(on, 0.3))
}

func TestSampler(t *testing.T) {
	assert.Contains(t, Sampler(Config{}).Description(), "AlwaysOffSampler")
	assert.Contains(t, Sampler(Config{Enabled: true, SampleRate: 0.25}).Description(), "TraceIDRatioBased{0.25}")
}

func TestFromAppConfig(t *testing.T) {
	cfg := FromAppConfig(config.TelemetryConfig{Enabled: true, SampleRate: 2, Endpoint: "otel:4318"})

	assert.Equal(t, 1.0, cfg.SampleRate)
	assert.Equal(t, "otel:4318", cfg.Endpoint)
}

func TestInitTracer_DisabledIsNoop(t *testing.T) {
	shutdown := InitTracer(context.Background(), Config{})

	assert.NoError(t, shutdown(context.Background()))
}

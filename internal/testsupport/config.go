package testsupport

import (
	"testing"

	"qrcmigrate/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*config.Config)

// NewConfig returns the default configuration with any options applied.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	cfg := config.Default()
	for _, opt := range opts {
		opt(&cfg)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("invalid test config: %v", err)
	}
	return &cfg
}

// WithPrefix overrides the target group prefix.
func WithPrefix(prefix string) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Descriptor.Prefix = prefix
	}
}

// WithAtomicWrite toggles temp-file-and-rename persistence.
func WithAtomicWrite(atomic bool) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Write.Atomic = atomic
	}
}

// WithLock toggles the advisory descriptor lock.
func WithLock(lock bool) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Write.Lock = lock
	}
}

package config

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Port int `yaml:"port" validate:"gt=0"`
}

// EngineConfig locates the external transit-data engine worker
type EngineConfig struct {
	NATSURL   string `yaml:"natsURL" validate:"omitempty"`
	Subject   string `yaml:"subject" validate:"omitempty"`
	TimeoutMS int    `yaml:"timeoutMS" validate:"gte=0"`
}

// RealtimeConfig controls the periodic realtime refresh cycle
type RealtimeConfig struct {
	// RefreshIntervalMS of 0 disables periodic refresh.
	RefreshIntervalMS int `yaml:"refreshIntervalMS" validate:"gte=0"`
}

// ExplorerConfig contains display-side settings
type ExplorerConfig struct {
	AgencyID string `yaml:"agency_id" validate:"omitempty"`
	// Timezone overrides the agency timezone from the dataset when set.
	Timezone string `yaml:"timezone" validate:"omitempty"`
	// LocalTimezoneFallback opts cosmetic-only time displays into the
	// process-local zone when the agency zone is unusable. Delays are never
	// computed against the fallback.
	LocalTimezoneFallback bool `yaml:"localTimezoneFallback"`
}

// Feed represents a single engine/explorer pairing
type Feed struct {
	Name     string         `yaml:"name" validate:"required"`
	Engine   EngineConfig   `yaml:"engine" validate:"required"`
	Realtime RealtimeConfig `yaml:"realtime"`
	Explorer ExplorerConfig `yaml:"explorer"`
}

// AppConfig is the root configuration structure
type AppConfig struct {
	Server   ServerConfig   `yaml:"server" validate:"required"`
	Engine   EngineConfig   `yaml:"engine"`
	Realtime RealtimeConfig `yaml:"realtime"`
	Explorer ExplorerConfig `yaml:"explorer"`
	Feeds    []Feed         `yaml:"feeds"`
}

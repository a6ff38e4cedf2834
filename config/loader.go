package config

import (
	"os"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config is the global application configuration
var Config AppConfig

// LoadAppConfig loads and validates the application configuration from
// config.yml, with environment overrides applied last.
func LoadAppConfig() error {
	paths := []string{"config.yml", "./config/config.yml"}
	var data []byte
	var err error
	for _, p := range paths {
		data, err = os.ReadFile(p)
		if err == nil {
			return LoadAppConfigBytes(data)
		}
	}
	return err
}

// LoadAppConfigBytes parses, validates, and installs a configuration.
func LoadAppConfigBytes(data []byte) error {
	var cfg AppConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return err
	}
	applyEnvOverrides(&cfg)
	applyDefaults(&cfg)
	v := validator.New()
	if err := v.Struct(cfg.Server); err != nil {
		return err
	}
	// feeds are optional; if present validate each
	for _, f := range cfg.Feeds {
		if err := v.Struct(f); err != nil {
			return err
		}
	}
	Config = cfg
	return nil
}

// applyEnvOverrides lets .env / environment variables win over the YAML for
// deployment-specific settings.
func applyEnvOverrides(cfg *AppConfig) {
	_ = godotenv.Load()
	if v := os.Getenv("NATS_URL"); v != "" {
		cfg.Engine.NATSURL = v
	}
	if v := os.Getenv("ENGINE_SUBJECT"); v != "" {
		cfg.Engine.Subject = v
	}
	if v := os.Getenv("PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil && p > 0 {
			cfg.Server.Port = p
		}
	}
}

func applyDefaults(cfg *AppConfig) {
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 16280
	}
	if cfg.Engine.NATSURL == "" {
		cfg.Engine.NATSURL = "nats://127.0.0.1:4222"
	}
	if cfg.Engine.Subject == "" {
		cfg.Engine.Subject = "gtfs.engine.query"
	}
	if cfg.Engine.TimeoutMS == 0 {
		cfg.Engine.TimeoutMS = 15000
	}
}

// SelectFeed chooses a feed by name; fallback to first; if none, use
// top-level Engine/Realtime/Explorer.
func SelectFeed(name string) (EngineConfig, RealtimeConfig, ExplorerConfig) {
	if name != "" {
		for _, f := range Config.Feeds {
			if f.Name == name {
				return f.Engine, f.Realtime, f.Explorer
			}
		}
	}
	if len(Config.Feeds) > 0 {
		f := Config.Feeds[0]
		return f.Engine, f.Realtime, f.Explorer
	}
	return Config.Engine, Config.Realtime, Config.Explorer
}

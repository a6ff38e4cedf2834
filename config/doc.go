// Package config handles application configuration loading and validation.
//
// Configuration is loaded from config.yml and validated using struct tags;
// a .env file or environment variables may override the NATS and server
// settings. The package supports multiple named feeds and allows feed
// selection by name.
package config

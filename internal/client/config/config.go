// Package config handles configuration for the client component,
// including defaults, JSON overlay, and command-line flags.
package config

// Config holds runtime settings for the GarageHub CLI.
//
// Fields:
//   - ServerEndpoint: base URL of the entry store's REST endpoint.
//   - S3Bucket / S3Region: feed the pure key→URL mapping for photo links.
//   - DataDir: directory the session key-value store lives in.
type Config struct {
	ServerEndpoint string
	S3Bucket       string
	S3Region       string
	DataDir        string
}

// LoadDefaults populates c with sensible development defaults.
func (c *Config) LoadDefaults() {
	c.ServerEndpoint = "http://127.0.0.1:8080"
	c.S3Bucket = "garagehub-photos"
	c.S3Region = "us-east-1"
	c.DataDir = ".garagehub"
}

// LoadConfig constructs a Config, applies defaults, then overlays values
// from JSON (if present) and command-line flags (if present). Later sources
// take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}

package server

// Config holds configuration for the HTTP gateway.
type Config struct {
	// Port is the port where the server will listen.
	Port string `mapstructure:"port" default:"8080"`
	// ApiKey is the secret key required to access the API. Empty disables the check.
	ApiKey string `mapstructure:"api_key" default:""`
	// BodyLimitMB caps the size of uploaded objects.
	BodyLimitMB int `mapstructure:"body_limit_mb" default:"64"`
}

const defaultBodyLimitMB = 64

// Addr returns the listen address for the configured port.
func (c Config) Addr() string {
	if c.Port == "" {
		return ":8080"
	}
	return ":" + c.Port
}

// BodyLimit returns the maximum request body size in bytes.
func (c Config) BodyLimit() int {
	if c.BodyLimitMB <= 0 {
		return defaultBodyLimitMB << 20
	}
	return c.BodyLimitMB << 20
}

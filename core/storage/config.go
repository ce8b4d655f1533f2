package storage

import (
	"fmt"
	"net/url"
	"strings"
	"time"
)

// Supported connector drivers.
const (
	// DriverS3 uses the AWS SDK.
	DriverS3 = "s3"
	// DriverMinio uses the MinIO client.
	DriverMinio = "minio"
	// DriverMemory keeps objects in process memory.
	DriverMemory = "memory"
)

// DefaultRegion is the region sent to S3-compatible providers that ignore it.
const DefaultRegion = "us-east-1"

// Config holds configuration for the storage provider.
type Config struct {
	// Driver selects the connector implementation (s3, minio, memory).
	Driver string `mapstructure:"driver" default:"s3"`
	// Endpoint is the URL of the storage service.
	Endpoint string `mapstructure:"endpoint" default:""`
	// AccessKey is the access key ID for authentication.
	AccessKey string `mapstructure:"access_key" default:""`
	// SecretKey is the secret access key for authentication.
	SecretKey string `mapstructure:"secret_key" default:""`
	// UseSSL is used when Endpoint carries no scheme.
	UseSSL bool `mapstructure:"use_ssl" default:"true"`
	// Bucket is the name of the bucket every operation targets.
	Bucket string `mapstructure:"bucket" default:""`
	// Region is the signing region.
	Region string `mapstructure:"region" default:"us-east-1"`
	// TimeoutSeconds is the connection timeout in seconds.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
	// PageSize caps the number of keys requested per listing page. Zero lets the service decide.
	PageSize int `mapstructure:"page_size" default:"1000"`
}

// Validate checks the settings that can be verified without a network call.
func (c Config) Validate() error {
	switch c.driver() {
	case DriverS3, DriverMinio, DriverMemory:
	default:
		return fmt.Errorf("unknown storage driver %q", c.Driver)
	}
	if c.PageSize < 0 {
		return fmt.Errorf("page size must not be negative, got %d", c.PageSize)
	}
	return nil
}

func (c Config) driver() string {
	if c.Driver == "" {
		return DriverS3
	}
	return strings.ToLower(c.Driver)
}

func (c Config) region() string {
	if c.Region == "" {
		return DefaultRegion
	}
	return c.Region
}

func (c Config) timeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return 30 * time.Second
	}
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// EndpointURL returns the endpoint as an absolute URL. An endpoint given
// without a scheme gets https or http depending on UseSSL.
func (c Config) EndpointURL() (*url.URL, error) {
	raw := strings.TrimSpace(c.Endpoint)
	if raw == "" {
		return nil, fmt.Errorf("storage endpoint is empty")
	}
	if !strings.Contains(raw, "://") {
		scheme := "http"
		if c.UseSSL {
			scheme = "https"
		}
		raw = scheme + "://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid storage endpoint %q: %w", c.Endpoint, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("unsupported endpoint scheme %q", u.Scheme)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("storage endpoint %q has no host", c.Endpoint)
	}
	return u, nil
}

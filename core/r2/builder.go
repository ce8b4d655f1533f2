package r2

import (
	"time"

	"r2-manager/core/storage"

	"go.uber.org/zap"
)

// Names reported by MissingFieldError.
const (
	FieldBucketName = "bucket_name"
	FieldURL        = "url"
	FieldClientID   = "client_id"
	FieldSecretKey  = "secret_key"
)

// Builder accumulates the settings of a Client. Setters take and return the
// builder by value, so a partially configured builder can be reused.
// The zero value is ready to use.
type Builder struct {
	bucketName *string
	url        *string
	clientID   *string
	secretKey  *string

	useSSL    *bool
	region    string
	driver    string
	pageSize  int
	timeout   time.Duration
	logger    *zap.Logger
	connector storage.Connector
}

// NewBuilder returns an empty builder.
func NewBuilder() Builder {
	return Builder{}
}

// FromConfig returns a builder preloaded from a storage configuration.
// Empty required values are left unset so Build reports them.
func FromConfig(cfg storage.Config) Builder {
	b := NewBuilder().
		UseSSL(cfg.UseSSL).
		Region(cfg.Region).
		Driver(cfg.Driver).
		PageSize(cfg.PageSize).
		Timeout(time.Duration(cfg.TimeoutSeconds) * time.Second)
	if cfg.Bucket != "" {
		b = b.BucketName(cfg.Bucket)
	}
	if cfg.Endpoint != "" {
		b = b.URL(cfg.Endpoint)
	}
	if cfg.AccessKey != "" {
		b = b.ClientID(cfg.AccessKey)
	}
	if cfg.SecretKey != "" {
		b = b.SecretKey(cfg.SecretKey)
	}
	return b
}

// BucketName sets the bucket every operation targets.
func (b Builder) BucketName(name string) Builder {
	b.bucketName = &name
	return b
}

// URL sets the endpoint of the storage service.
func (b Builder) URL(endpoint string) Builder {
	b.url = &endpoint
	return b
}

// ClientID sets the access key ID.
func (b Builder) ClientID(id string) Builder {
	b.clientID = &id
	return b
}

// SecretKey sets the secret access key.
func (b Builder) SecretKey(secret string) Builder {
	b.secretKey = &secret
	return b
}

// UseSSL picks https or http for a URL given without a scheme (default https).
func (b Builder) UseSSL(enabled bool) Builder {
	b.useSSL = &enabled
	return b
}

// Region overrides the signing region (default us-east-1).
func (b Builder) Region(region string) Builder {
	b.region = region
	return b
}

// Driver selects the connector implementation (default s3).
func (b Builder) Driver(driver string) Builder {
	b.driver = driver
	return b
}

// PageSize caps the keys requested per listing page.
func (b Builder) PageSize(n int) Builder {
	b.pageSize = n
	return b
}

// Timeout sets the connect and response-header timeout of the connector.
func (b Builder) Timeout(d time.Duration) Builder {
	b.timeout = d
	return b
}

// Logger sets the logger used for operation logs. Defaults to a no-op logger.
func (b Builder) Logger(l *zap.Logger) Builder {
	b.logger = l
	return b
}

// Connector makes Build use conn instead of creating one from the settings.
func (b Builder) Connector(conn storage.Connector) Builder {
	b.connector = conn
	return b
}

// Config returns the storage configuration described by the builder.
func (b Builder) Config() storage.Config {
	return storage.Config{
		Driver:         b.driver,
		Endpoint:       deref(b.url),
		AccessKey:      deref(b.clientID),
		SecretKey:      deref(b.secretKey),
		UseSSL:         b.useSSL == nil || *b.useSSL,
		Bucket:         deref(b.bucketName),
		Region:         b.region,
		TimeoutSeconds: int(b.timeout / time.Second),
		PageSize:       b.pageSize,
	}
}

// Build validates that every required field is set and returns a Client.
// No request is sent to the storage service.
func (b Builder) Build() (*Client, error) {
	for _, f := range []struct {
		name  string
		value *string
	}{
		{FieldBucketName, b.bucketName},
		{FieldURL, b.url},
		{FieldClientID, b.clientID},
		{FieldSecretKey, b.secretKey},
	} {
		if f.value == nil {
			return nil, &MissingFieldError{Field: f.name}
		}
	}

	cfg := b.Config()
	conn := b.connector
	if conn == nil {
		var err error
		conn, err = storage.NewConnector(cfg)
		if err != nil {
			return nil, err
		}
	}

	logger := b.logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Client{
		bucket:   cfg.Bucket,
		conn:     conn,
		logger:   logger.With(zap.String("bucket", cfg.Bucket)),
		pageSize: cfg.PageSize,
	}, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

package objectstore

import (
	"fmt"
	"net/http"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
)

// ClientConfig contains configuration options for the storage client.
type ClientConfig struct {
	// Region is the region to use for requests
	Region string

	// Endpoint is the storage endpoint URL (S3-compatible gateway)
	Endpoint string

	// AccessKeyID and SecretAccessKey are the static credentials for the
	// gateway
	AccessKeyID     string
	SecretAccessKey string

	// ForcePathStyle forces path-style addressing instead of
	// virtual-hosted style. S3-compatible gateways generally require it.
	ForcePathStyle bool

	// ConnectTimeout bounds how long a TCP connection attempt may take
	ConnectTimeout time.Duration

	// OperationTimeout bounds an entire request, including the body
	// transfer. Zero means no per-request deadline.
	OperationTimeout time.Duration

	// InsecureSkipVerify disables TLS certificate verification.
	// Verification stays on unless explicitly turned off.
	InsecureSkipVerify bool

	// RetryMode is the SDK retry mode ("standard" or "adaptive")
	RetryMode aws.RetryMode

	// HTTPClient allows providing a custom HTTP client
	HTTPClient *http.Client
}

// Option is a functional option for configuring the client.
type Option func(*ClientConfig)

// WithRegion sets the region for the client.
func WithRegion(region string) Option {
	return func(c *ClientConfig) {
		c.Region = region
	}
}

// WithEndpoint sets the endpoint URL for the client.
func WithEndpoint(endpoint string) Option {
	return func(c *ClientConfig) {
		c.Endpoint = endpoint
	}
}

// WithStaticCredentials sets the access key pair used to sign requests.
func WithStaticCredentials(accessKeyID, secretAccessKey string) Option {
	return func(c *ClientConfig) {
		c.AccessKeyID = accessKeyID
		c.SecretAccessKey = secretAccessKey
	}
}

// WithForcePathStyle enables path-style addressing.
func WithForcePathStyle(force bool) Option {
	return func(c *ClientConfig) {
		c.ForcePathStyle = force
	}
}

// WithConnectTimeout sets the connection timeout.
func WithConnectTimeout(timeout time.Duration) Option {
	return func(c *ClientConfig) {
		c.ConnectTimeout = timeout
	}
}

// WithOperationTimeout sets the per-request deadline.
func WithOperationTimeout(timeout time.Duration) Option {
	return func(c *ClientConfig) {
		c.OperationTimeout = timeout
	}
}

// WithInsecureSkipVerify disables TLS certificate verification. Intended
// for local development against self-signed gateways only.
func WithInsecureSkipVerify(skip bool) Option {
	return func(c *ClientConfig) {
		c.InsecureSkipVerify = skip
	}
}

// WithRetryMode sets the retry mode for the client.
// Valid values are aws.RetryModeStandard and aws.RetryModeAdaptive.
func WithRetryMode(mode aws.RetryMode) Option {
	return func(c *ClientConfig) {
		c.RetryMode = mode
	}
}

// WithCustomHTTPClient sets a custom HTTP client, replacing the one the
// client would otherwise build from the timeout settings.
func WithCustomHTTPClient(client *http.Client) Option {
	return func(c *ClientConfig) {
		c.HTTPClient = client
	}
}

// validate checks the configuration for invalid values.
func (c *ClientConfig) validate() error {
	if c.Endpoint == "" {
		return fmt.Errorf("%w: endpoint is required", ErrInvalidInput)
	}
	if c.AccessKeyID == "" || c.SecretAccessKey == "" {
		return fmt.Errorf("%w: credentials are required", ErrInvalidInput)
	}
	if c.ConnectTimeout < 0 {
		return fmt.Errorf("%w: connect timeout cannot be negative", ErrInvalidInput)
	}
	if c.OperationTimeout < 0 {
		return fmt.Errorf("%w: operation timeout cannot be negative", ErrInvalidInput)
	}
	return nil
}

// Package objectstore implements the transfer engine that moves media
// payloads to an S3-compatible storage gateway. It plans each transfer
// from the payload size, uploads small payloads in a single request and
// large ones as concurrent multipart uploads, and folds every failure
// into a small error taxonomy.
package objectstore

import (
	"context"
	"crypto/tls"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/aws/retry"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

const (
	defaultRegion           = "us-east-1"
	defaultConnectTimeout   = 60 * time.Second
	defaultOperationTimeout = 900 * time.Second
)

// Client is a storage client that wraps the AWS SDK S3 client.
// It is safe for concurrent use and intended to be created once at
// process start and shared.
type Client struct {
	s3Client  S3API
	rawClient *s3.Client
	config    ClientConfig
	mu        sync.RWMutex
}

// New creates a new storage client with the given options.
func New(ctx context.Context, opts ...Option) (*Client, error) {
	cfg := ClientConfig{
		Region:           defaultRegion,
		ForcePathStyle:   true,
		ConnectTimeout:   defaultConnectTimeout,
		OperationTimeout: defaultOperationTimeout,
		RetryMode:        aws.RetryModeAdaptive,
	}

	for _, opt := range opts {
		opt(&cfg)
	}

	if err := cfg.validate(); err != nil {
		return nil, NewError("new", err)
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = newHTTPClient(cfg)
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		),
		awsconfig.WithHTTPClient(httpClient),
		awsconfig.WithRetryer(newRetryer(cfg.RetryMode)),
	)
	if err != nil {
		return nil, NewError("new", err).WithMessage("failed to load configuration")
	}

	rawClient := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(cfg.Endpoint)
		o.UsePathStyle = cfg.ForcePathStyle
	})

	return &Client{
		s3Client:  rawClient,
		rawClient: rawClient,
		config:    cfg,
	}, nil
}

// NewWithClient creates a client with a pre-configured S3 API
// implementation. Used in tests to inject mocks.
func NewWithClient(s3Client S3API, cfg ClientConfig) *Client {
	return &Client{
		s3Client: s3Client,
		config:   cfg,
	}
}

// Config returns a copy of the client configuration.
func (c *Client) Config() ClientConfig {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.config
}

// newRetryer builds the SDK retryer for the configured mode with the
// transfer retry budget.
func newRetryer(mode aws.RetryMode) func() aws.Retryer {
	return func() aws.Retryer {
		withBudget := func(so *retry.StandardOptions) {
			so.MaxAttempts = defaultMaxRetryAttempts
		}
		if mode == aws.RetryModeStandard {
			return retry.NewStandard(withBudget)
		}
		return retry.NewAdaptiveMode(func(o *retry.AdaptiveModeOptions) {
			o.StandardOptions = append(o.StandardOptions, withBudget)
		})
	}
}

// newHTTPClient builds the transport from the timeout settings. The
// connect timeout applies to dialing only; the operation timeout bounds
// the whole request including the body transfer.
func newHTTPClient(cfg ClientConfig) *http.Client {
	transport := &http.Transport{
		DialContext: (&net.Dialer{
			Timeout: cfg.ConnectTimeout,
		}).DialContext,
		TLSClientConfig: &tls.Config{
			InsecureSkipVerify: cfg.InsecureSkipVerify, //nolint:gosec // off by default, explicit opt-in for local gateways
		},
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: defaultMaxConcurrency,
		IdleConnTimeout:     90 * time.Second,
	}
	return &http.Client{
		Transport: transport,
		Timeout:   cfg.OperationTimeout,
	}
}

// operationContext applies the per-request deadline if one is configured
// and the caller has not already set an earlier one.
func (c *Client) operationContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if c.config.OperationTimeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, c.config.OperationTimeout)
}

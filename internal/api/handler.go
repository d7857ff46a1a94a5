// Package api exposes the HTTP surface: text submissions, media
// uploads, authentication pass-through, and health.
package api

import (
	"context"
	"io"
	"log/slog"

	"github.com/sainikith07/DynoCollect/internal/identity"
	"github.com/sainikith07/DynoCollect/internal/metadata"
	"github.com/sainikith07/DynoCollect/internal/uploader"
)

// Uploader moves a media payload to storage and returns its public URL.
type Uploader interface {
	Upload(ctx context.Context, bucket uploader.Bucket, filename string, body io.Reader, size int64, contentType string) (*uploader.Result, error)
}

// Identity is the slice of the identity client the handlers use.
type Identity interface {
	Register(ctx context.Context, creds identity.Credentials) (*identity.Session, error)
	SignIn(ctx context.Context, creds identity.Credentials) (*identity.Session, error)
	SignOut(ctx context.Context, accessToken string) error
	CurrentUser(ctx context.Context, accessToken string) (*identity.User, error)
}

// HealthCheck reports whether a dependency is reachable.
type HealthCheck func(ctx context.Context) error

// Handler holds the wired dependencies for all routes.
type Handler struct {
	uploads      Uploader
	records      metadata.Recorder
	identity     Identity
	dbHealth     HealthCheck
	logger       *slog.Logger
	maxBodyBytes int64
}

// HandlerConfig wires a Handler.
type HandlerConfig struct {
	Uploads      Uploader
	Records      metadata.Recorder
	Identity     Identity
	DBHealth     HealthCheck
	Logger       *slog.Logger
	MaxBodyBytes int64
}

// NewHandler creates the route handler set.
func NewHandler(cfg HandlerConfig) *Handler {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		uploads:      cfg.Uploads,
		records:      cfg.Records,
		identity:     cfg.Identity,
		dbHealth:     cfg.DBHealth,
		logger:       logger,
		maxBodyBytes: cfg.MaxBodyBytes,
	}
}

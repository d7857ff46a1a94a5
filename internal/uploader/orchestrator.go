package uploader

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"path"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"

	"github.com/sainikith07/DynoCollect/internal/objectstore"
)

// Storage is the transfer engine the orchestrator writes through.
type Storage interface {
	Transfer(ctx context.Context, input objectstore.TransferInput) (*objectstore.TransferResult, error)
}

// Result describes a finished upload.
type Result struct {
	// Key is the storage key the payload was written under
	Key string

	// PublicURL is the stable public address of the object
	PublicURL string

	// SizeBytes is the payload size
	SizeBytes int64

	// Duration is how long the transfer took
	Duration time.Duration

	// ThroughputMBps is the observed transfer rate in MiB per second.
	// Zero for empty payloads.
	ThroughputMBps float64
}

// Orchestrator coordinates a single upload end to end: key generation,
// content-type resolution, the transfer itself, and the public URL.
type Orchestrator struct {
	storage     Storage
	urlTemplate string
	logger      *slog.Logger

	// newKey is swappable in tests to pin the generated key
	newKey func() string
}

// New creates an orchestrator. The URL template must contain {bucket}
// and {filename} placeholders.
func New(storage Storage, urlTemplate string, logger *slog.Logger) *Orchestrator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Orchestrator{
		storage:     storage,
		urlTemplate: urlTemplate,
		logger:      logger,
		newKey:      func() string { return uuid.New().String() },
	}
}

// Upload moves the payload into the given bucket and returns the public
// URL and transfer statistics. The size must be known up front.
func (o *Orchestrator) Upload(ctx context.Context, bucket Bucket, filename string, body io.Reader, size int64, contentType string) (*Result, error) {
	if _, err := ParseBucket(bucket.String()); err != nil {
		return nil, err
	}
	if filename == "" {
		return nil, fmt.Errorf("uploader: filename is required: %w", objectstore.ErrInvalidInput)
	}
	if size < 0 {
		return nil, fmt.Errorf("uploader: size must be known: %w", objectstore.ErrInvalidInput)
	}

	// Strip any directory components a client may have smuggled in.
	key := o.newKey() + "_" + path.Base(filename)

	resolvedType, body := resolveContentType(filename, contentType, body)

	o.logger.Info("upload starting",
		"bucket", bucket.String(),
		"key", key,
		"size_bytes", size,
		"content_type", resolvedType,
	)

	result, err := o.storage.Transfer(ctx, objectstore.TransferInput{
		Bucket:      bucket.String(),
		Key:         key,
		Body:        body,
		Size:        size,
		ContentType: resolvedType,
	})
	if err != nil {
		o.logger.Error("upload failed",
			"bucket", bucket.String(),
			"key", key,
			"error", err,
		)
		return nil, err
	}

	throughput := 0.0
	if secs := result.Duration.Seconds(); secs > 0 && size > 0 {
		throughput = (float64(size) / (1024 * 1024)) / secs
	}

	o.logger.Info("upload complete",
		"bucket", bucket.String(),
		"key", key,
		"parts", result.Parts,
		"duration", result.Duration,
		"throughput_mbps", throughput,
	)

	return &Result{
		Key:            key,
		PublicURL:      o.PublicURL(bucket, key),
		SizeBytes:      size,
		Duration:       result.Duration,
		ThroughputMBps: throughput,
	}, nil
}

// PublicURL renders the stable public address for an object.
func (o *Orchestrator) PublicURL(bucket Bucket, key string) string {
	r := strings.NewReplacer(
		"{bucket}", bucket.String(),
		"{filename}", key,
	)
	return r.Replace(o.urlTemplate)
}

// mediaTypesByExt covers the media extensions clients actually send.
// The system mime tables vary between hosts, so the common cases are
// pinned here and mime.TypeByExtension is only a fallback.
var mediaTypesByExt = map[string]string{
	".mp3":  "audio/mpeg",
	".wav":  "audio/wav",
	".ogg":  "audio/ogg",
	".m4a":  "audio/mp4",
	".flac": "audio/flac",
	".mp4":  "video/mp4",
	".webm": "video/webm",
	".mov":  "video/quicktime",
	".avi":  "video/x-msvideo",
	".mkv":  "video/x-matroska",
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".gif":  "image/gif",
	".webp": "image/webp",
}

// resolveContentType fills in a usable MIME type when the client sent
// none, or sent the useless text/plain default some browsers attach to
// media files. Extension lookup comes first; for seekable payloads the
// leading bytes are sniffed as a fallback.
func resolveContentType(filename, declared string, body io.Reader) (string, io.Reader) {
	if declared != "" && declared != "text/plain" {
		return declared, body
	}

	ext := strings.ToLower(path.Ext(filename))
	if byExt, ok := mediaTypesByExt[ext]; ok {
		return byExt, body
	}
	if byExt := mime.TypeByExtension(ext); byExt != "" {
		return byExt, body
	}

	if rs, ok := body.(io.ReadSeeker); ok {
		header := make([]byte, 3072)
		n, _ := io.ReadFull(rs, header)
		if _, err := rs.Seek(0, io.SeekStart); err == nil && n > 0 {
			return mimetype.Detect(header[:n]).String(), rs
		}
	}

	return "application/octet-stream", body
}

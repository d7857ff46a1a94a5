// Package metadata persists contribution rows. Every accepted
// submission, text or media, becomes exactly one row in the
// contributions table.
package metadata

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
)

// Contribution is one accepted submission. Exactly one of the payload
// columns is set per row; the rest stay NULL.
type Contribution struct {
	ID        int64     `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`
	TextData  *string   `gorm:"column:text_data" json:"text_data,omitempty"`
	AudioURL  *string   `gorm:"column:audio_url" json:"audio_url,omitempty"`
	VideoURL  *string   `gorm:"column:video_url" json:"video_url,omitempty"`
	ImageURL  *string   `gorm:"column:image_url" json:"image_url,omitempty"`
}

// TableName implements the gorm naming override.
func (Contribution) TableName() string {
	return "contributions"
}

// Sentinel errors for the metadata layer.
var (
	ErrEmptyText     = errors.New("metadata: text cannot be empty")
	ErrUnknownColumn = errors.New("metadata: unknown url column")
	ErrUnavailable   = errors.New("metadata: database unavailable")
)

// Recorder writes contribution rows.
type Recorder interface {
	// RecordText stores a text submission.
	RecordText(ctx context.Context, text string) (*Contribution, error)

	// RecordMediaURL stores a media URL in the named column
	// (audio_url, video_url or image_url).
	RecordMediaURL(ctx context.Context, column, url string) (*Contribution, error)
}

// gormRecorder is the Postgres-backed Recorder.
type gormRecorder struct {
	db *gorm.DB
}

// NewRecorder creates a Recorder backed by the given database handle.
func NewRecorder(db *gorm.DB) Recorder {
	return &gormRecorder{db: db}
}

func (r *gormRecorder) RecordText(ctx context.Context, text string) (*Contribution, error) {
	if text == "" {
		return nil, ErrEmptyText
	}

	row := &Contribution{TextData: &text}
	if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	return row, nil
}

func (r *gormRecorder) RecordMediaURL(ctx context.Context, column, url string) (*Contribution, error) {
	if url == "" {
		return nil, fmt.Errorf("metadata: url cannot be empty")
	}

	row := &Contribution{}
	switch column {
	case "audio_url":
		row.AudioURL = &url
	case "video_url":
		row.VideoURL = &url
	case "image_url":
		row.ImageURL = &url
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownColumn, column)
	}

	if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	return row, nil
}

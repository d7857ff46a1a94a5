// Package uploader orchestrates media uploads: it names the media
// buckets, generates collision-free storage keys, resolves content
// types, and turns raw transfers into public URLs and throughput
// figures.
package uploader

import (
	"fmt"
)

// Bucket identifies one of the media buckets.
type Bucket string

const (
	BucketAudio Bucket = "audio"
	BucketVideo Bucket = "video"
	BucketImage Bucket = "images"
)

// ErrUnknownBucket is returned when a bucket name is not one of the
// media buckets.
var ErrUnknownBucket = fmt.Errorf("uploader: unknown bucket")

// ParseBucket validates a bucket name. Anything outside the fixed set
// is rejected before any storage call is made.
func ParseBucket(name string) (Bucket, error) {
	switch Bucket(name) {
	case BucketAudio, BucketVideo, BucketImage:
		return Bucket(name), nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownBucket, name)
}

func (b Bucket) String() string {
	return string(b)
}

// Column returns the contribution column that stores URLs for this
// bucket.
func (b Bucket) Column() string {
	switch b {
	case BucketAudio:
		return "audio_url"
	case BucketVideo:
		return "video_url"
	case BucketImage:
		return "image_url"
	}
	return ""
}

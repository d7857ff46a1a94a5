package objectstore

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

// TransferInput describes a payload to move to the store.
type TransferInput struct {
	// Bucket is the target bucket
	Bucket string

	// Key is the object key within the bucket
	Key string

	// Body is the payload source. It is read exactly once, front to back.
	Body io.Reader

	// Size is the payload size in bytes. It must be known up front so
	// the transfer can be planned.
	Size int64

	// ContentType is the MIME type stored with the object
	ContentType string
}

// TransferResult contains the outcome of a completed transfer.
type TransferResult struct {
	// Key is the object key that was written
	Key string

	// ETag is the entity tag returned by the store
	ETag string

	// Size is the number of bytes transferred
	Size int64

	// Parts is the number of parts used (1 for single-request uploads)
	Parts int

	// Duration is the time the transfer took
	Duration time.Duration
}

// validate checks the input for invalid values.
func (in *TransferInput) validate() error {
	if in.Bucket == "" {
		return fmt.Errorf("%w: bucket cannot be empty", ErrInvalidInput)
	}
	if in.Key == "" {
		return fmt.Errorf("%w: key cannot be empty", ErrInvalidInput)
	}
	if in.Body == nil {
		return fmt.Errorf("%w: body cannot be nil", ErrInvalidInput)
	}
	if in.Size < 0 {
		return fmt.Errorf("%w: size cannot be negative", ErrInvalidInput)
	}
	return nil
}

// Transfer moves the payload to the store. Payloads at or below the
// multipart threshold go out as a single PutObject; larger ones are
// split into concurrently uploaded parts per the transfer plan.
func (c *Client) Transfer(ctx context.Context, input TransferInput) (*TransferResult, error) {
	if err := input.validate(); err != nil {
		return nil, NewObjectError("transfer", input.Bucket, input.Key, err)
	}

	plan := BuildPlan(input.Size)

	ctx, cancel := c.operationContext(ctx)
	defer cancel()

	start := time.Now()

	var (
		result *TransferResult
		err    error
	)
	if plan.Multipart {
		result, err = c.transferMultipart(ctx, input, plan)
	} else {
		result, err = c.transferSingle(ctx, input)
	}
	if err != nil {
		return nil, err
	}

	result.Duration = time.Since(start)
	return result, nil
}

// transferSingle uploads the payload in one PutObject request.
func (c *Client) transferSingle(ctx context.Context, input TransferInput) (*TransferResult, error) {
	// Small by definition: at most the multipart threshold.
	data, err := readExactly(input.Body, input.Size)
	if err != nil {
		return nil, NewObjectError("transfer", input.Bucket, input.Key, err).
			WithMessage("failed to read payload")
	}

	putInput := &s3.PutObjectInput{
		Bucket:        aws.String(input.Bucket),
		Key:           aws.String(input.Key),
		Body:          bytes.NewReader(data),
		ContentLength: aws.Int64(input.Size),
		// Objects are served from the bucket's public URL space.
		ACL: types.ObjectCannedACLPublicRead,
	}
	if input.ContentType != "" {
		putInput.ContentType = aws.String(input.ContentType)
	}

	output, err := c.s3Client.PutObject(ctx, putInput)
	if err != nil {
		return nil, NewObjectError("transfer", input.Bucket, input.Key, Classify(err))
	}

	result := &TransferResult{
		Key:   input.Key,
		Size:  input.Size,
		Parts: 1,
	}
	if output.ETag != nil {
		result.ETag = *output.ETag
	}
	return result, nil
}

// Exists checks whether an object is present in the bucket.
func (c *Client) Exists(ctx context.Context, bucket, key string) (bool, error) {
	if bucket == "" || key == "" {
		return false, NewObjectError("exists", bucket, key,
			fmt.Errorf("%w: bucket and key are required", ErrInvalidInput))
	}

	ctx, cancel := c.operationContext(ctx)
	defer cancel()

	_, err := c.s3Client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		if isNotFound(err) {
			return false, nil
		}
		return false, NewObjectError("exists", bucket, key, Classify(err))
	}
	return true, nil
}

// Delete removes an object from the bucket. Deleting a missing object is
// not an error.
func (c *Client) Delete(ctx context.Context, bucket, key string) error {
	if bucket == "" || key == "" {
		return NewObjectError("delete", bucket, key,
			fmt.Errorf("%w: bucket and key are required", ErrInvalidInput))
	}

	ctx, cancel := c.operationContext(ctx)
	defer cancel()

	_, err := c.s3Client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return NewObjectError("delete", bucket, key, Classify(err))
	}
	return nil
}

// readExactly reads size bytes from r and fails if the source ends
// early.
func readExactly(r io.Reader, size int64) ([]byte, error) {
	buf := make([]byte, size)
	if size == 0 {
		return buf, nil
	}
	if _, err := io.ReadFull(r, buf); err != nil {
		return nil, fmt.Errorf("short read: %w", err)
	}
	return buf, nil
}

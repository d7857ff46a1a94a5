package objectstore

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sort"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

// partJob is one chunk of the payload waiting for an upload worker.
type partJob struct {
	number int32
	data   []byte
}

// transferMultipart uploads the payload as a multipart upload. A single
// producer cuts the source into plan.ChunkSize parts and feeds a queue
// bounded at plan.IOQueueDepth; plan.MaxConcurrency workers drain it.
// On any failure the upload is aborted so the store does not accumulate
// orphaned parts.
func (c *Client) transferMultipart(ctx context.Context, input TransferInput, plan TransferPlan) (*TransferResult, error) {
	createInput := &s3.CreateMultipartUploadInput{
		Bucket: aws.String(input.Bucket),
		Key:    aws.String(input.Key),
		ACL:    types.ObjectCannedACLPublicRead,
	}
	if input.ContentType != "" {
		createInput.ContentType = aws.String(input.ContentType)
	}

	createOutput, err := c.s3Client.CreateMultipartUpload(ctx, createInput)
	if err != nil {
		return nil, NewObjectError("transfer", input.Bucket, input.Key, Classify(err)).
			WithMessage("failed to create multipart upload")
	}
	uploadID := aws.ToString(createOutput.UploadId)

	completed, err := c.uploadParts(ctx, input, plan, uploadID)
	if err != nil {
		c.abortMultipart(ctx, input.Bucket, input.Key, uploadID)
		return nil, NewObjectError("transfer", input.Bucket, input.Key, Classify(err))
	}

	sort.Slice(completed, func(i, j int) bool {
		return aws.ToInt32(completed[i].PartNumber) < aws.ToInt32(completed[j].PartNumber)
	})

	completeOutput, err := c.s3Client.CompleteMultipartUpload(ctx, &s3.CompleteMultipartUploadInput{
		Bucket:   aws.String(input.Bucket),
		Key:      aws.String(input.Key),
		UploadId: aws.String(uploadID),
		MultipartUpload: &types.CompletedMultipartUpload{
			Parts: completed,
		},
	})
	if err != nil {
		c.abortMultipart(ctx, input.Bucket, input.Key, uploadID)
		return nil, NewObjectError("transfer", input.Bucket, input.Key, Classify(err)).
			WithMessage("failed to complete multipart upload")
	}

	result := &TransferResult{
		Key:   input.Key,
		Size:  input.Size,
		Parts: len(completed),
	}
	if completeOutput.ETag != nil {
		result.ETag = *completeOutput.ETag
	}
	return result, nil
}

// uploadParts runs the producer and worker pool and returns the
// completed part list. The first error wins; the producer and remaining
// workers stop as soon as the shared context is cancelled.
func (c *Client) uploadParts(ctx context.Context, input TransferInput, plan TransferPlan, uploadID string) ([]types.CompletedPart, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	jobs := make(chan partJob, plan.IOQueueDepth)
	errCh := make(chan error, 1)

	fail := func(err error) {
		select {
		case errCh <- err:
		default:
		}
		cancel()
	}

	// Producer: read the source front to back, one chunk per part.
	go func() {
		defer close(jobs)
		var partNumber int32
		remaining := input.Size
		for remaining > 0 {
			chunk := plan.ChunkSize
			if remaining < chunk {
				chunk = remaining
			}
			buf := make([]byte, chunk)
			if _, err := io.ReadFull(input.Body, buf); err != nil {
				fail(fmt.Errorf("failed to read part %d: %w", partNumber+1, err))
				return
			}
			partNumber++
			remaining -= chunk

			select {
			case jobs <- partJob{number: partNumber, data: buf}:
			case <-ctx.Done():
				return
			}
		}
	}()

	workers := plan.MaxConcurrency
	if n := plan.partCount(); n < workers {
		workers = n
	}

	var (
		mu        sync.Mutex
		completed []types.CompletedPart
		wg        sync.WaitGroup
	)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for job := range jobs {
				output, err := c.s3Client.UploadPart(ctx, &s3.UploadPartInput{
					Bucket:     aws.String(input.Bucket),
					Key:        aws.String(input.Key),
					UploadId:   aws.String(uploadID),
					PartNumber: aws.Int32(job.number),
					Body:       bytes.NewReader(job.data),
				})
				if err != nil {
					fail(fmt.Errorf("failed to upload part %d: %w", job.number, err))
					return
				}
				mu.Lock()
				completed = append(completed, types.CompletedPart{
					ETag:       output.ETag,
					PartNumber: aws.Int32(job.number),
				})
				mu.Unlock()
			}
		}()
	}

	wg.Wait()

	select {
	case err := <-errCh:
		return nil, err
	default:
	}

	if got, want := len(completed), plan.partCount(); got != want {
		return nil, fmt.Errorf("uploaded %d of %d parts", got, want)
	}
	return completed, nil
}

// abortMultipart cancels an in-progress multipart upload. Abort failures
// are swallowed: the original error is what the caller needs to see.
func (c *Client) abortMultipart(ctx context.Context, bucket, key, uploadID string) {
	if ctx.Err() != nil {
		// The shared context may already be cancelled by the failure
		// that got us here; the abort still has to go out.
		ctx = context.WithoutCancel(ctx)
	}
	_, _ = c.s3Client.AbortMultipartUpload(ctx, &s3.AbortMultipartUploadInput{
		Bucket:   aws.String(bucket),
		Key:      aws.String(key),
		UploadId: aws.String(uploadID),
	})
}

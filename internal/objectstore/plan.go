package objectstore

const (
	kib = 1024
	mib = 1024 * kib

	// multipartThreshold is the payload size above which uploads switch
	// from a single PutObject to a multipart upload.
	multipartThreshold = 5 * mib

	// largeFileCutoff separates the two chunk-size tiers. Payloads
	// strictly larger than this use the smaller chunk size so that more
	// parts are in flight at once.
	largeFileCutoff = 50 * mib

	smallChunkSize = 256 * kib
	largeChunkSize = 512 * kib

	defaultMaxConcurrency   = 30
	defaultIOQueueDepth     = 200
	defaultReadChunkSize    = 256 * kib
	defaultMaxRetryAttempts = 15
)

// TransferPlan describes how a single payload will be moved to the store.
// All fields are derived from the payload size; the same size always
// produces the same plan.
type TransferPlan struct {
	// SizeBytes is the payload size the plan was computed for.
	SizeBytes int64

	// Multipart reports whether the payload crosses the multipart
	// threshold and will be uploaded in parts.
	Multipart bool

	// ChunkSize is the part size in bytes for multipart transfers.
	ChunkSize int64

	// MaxConcurrency bounds the number of parts uploaded in parallel.
	MaxConcurrency int

	// IOQueueDepth bounds the number of buffered parts waiting for a
	// worker. It caps memory held by parts that have been read from the
	// source but not yet sent.
	IOQueueDepth int

	// ReadChunkSize is the increment in which the source is read.
	ReadChunkSize int64

	// MaxRetryAttempts is the per-request retry budget handed to the SDK.
	MaxRetryAttempts int
}

// BuildPlan computes the transfer plan for a payload of the given size.
// Sizes at or below the multipart threshold are sent in one request;
// larger payloads are split into chunks, with the chunk size dropping
// once the payload exceeds the large-file cutoff.
func BuildPlan(sizeBytes int64) TransferPlan {
	plan := TransferPlan{
		SizeBytes:        sizeBytes,
		MaxConcurrency:   defaultMaxConcurrency,
		IOQueueDepth:     defaultIOQueueDepth,
		ReadChunkSize:    defaultReadChunkSize,
		MaxRetryAttempts: defaultMaxRetryAttempts,
	}

	if sizeBytes > multipartThreshold {
		plan.Multipart = true
	}

	if sizeBytes > largeFileCutoff {
		plan.ChunkSize = smallChunkSize
	} else {
		plan.ChunkSize = largeChunkSize
	}

	return plan
}

// partCount returns the number of parts a multipart transfer will produce.
func (p TransferPlan) partCount() int {
	if p.ChunkSize <= 0 || p.SizeBytes <= 0 {
		return 0
	}
	n := p.SizeBytes / p.ChunkSize
	if p.SizeBytes%p.ChunkSize != 0 {
		n++
	}
	return int(n)
}

// Package batch commits a sequence of write operations in chunks no larger
// than the store's batch limit, retrying each chunk with exponential backoff.
//
// Chunks are committed in order. When a chunk exhausts its retries the whole
// operation stops and a single *Error reports how many chunks were already
// committed, so a partial commit is never silent.
package batch

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v5"
)

// DefaultMaxBatchSize matches the write limit of common document stores
const DefaultMaxBatchSize = 500

type Config struct {
	MaxBatchSize    int
	MaxAttempts     uint // per chunk, including the first try
	InitialInterval time.Duration
	MaxInterval     time.Duration
}

func DefaultConfig() Config {
	return Config{
		MaxBatchSize:    DefaultMaxBatchSize,
		MaxAttempts:     5,
		InitialInterval: 200 * time.Millisecond,
		MaxInterval:     5 * time.Second,
	}
}

func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.MaxBatchSize <= 0 {
		c.MaxBatchSize = d.MaxBatchSize
	}
	if c.MaxAttempts == 0 {
		c.MaxAttempts = d.MaxAttempts
	}
	if c.InitialInterval <= 0 {
		c.InitialInterval = d.InitialInterval
	}
	if c.MaxInterval <= 0 {
		c.MaxInterval = d.MaxInterval
	}
	return c
}

// Error is the aggregate failure of a batch operation
type Error struct {
	FailedChunk     int
	CommittedChunks int
	TotalChunks     int
	CommittedOps    int
	TotalOps        int
	Err             error
}

func (e *Error) Error() string {
	return fmt.Sprintf("batch aborted at chunk %d/%d (%d of %d operations committed): %v",
		e.FailedChunk+1, e.TotalChunks, e.CommittedOps, e.TotalOps, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// PartialCommit reports whether some chunks were committed before the failure
func (e *Error) PartialCommit() bool {
	return e.CommittedChunks > 0
}

// Permanent marks an error as not worth retrying
func Permanent(err error) error {
	return backoff.Permanent(err)
}

// Chunk splits ops into consecutive slices of at most size elements
func Chunk[T any](ops []T, size int) [][]T {
	if size <= 0 {
		size = DefaultMaxBatchSize
	}
	chunks := make([][]T, 0, (len(ops)+size-1)/size)
	for start := 0; start < len(ops); start += size {
		end := min(start+size, len(ops))
		chunks = append(chunks, ops[start:end])
	}
	return chunks
}

// CommitFunc writes one chunk atomically
type CommitFunc[T any] func(ctx context.Context, chunk []T) error

// Commit writes ops chunk by chunk. onRetry, when non-nil, observes every failed attempt.
func Commit[T any](ctx context.Context, cfg Config, ops []T, commit CommitFunc[T], onRetry func(chunk int, err error, next time.Duration)) error {
	cfg = cfg.withDefaults()
	chunks := Chunk(ops, cfg.MaxBatchSize)

	committedOps := 0
	for i, chunk := range chunks {
		b := backoff.NewExponentialBackOff()
		b.InitialInterval = cfg.InitialInterval
		b.MaxInterval = cfg.MaxInterval

		opts := []backoff.RetryOption{
			backoff.WithBackOff(b),
			backoff.WithMaxTries(cfg.MaxAttempts),
		}
		if onRetry != nil {
			chunkIndex := i
			opts = append(opts, backoff.WithNotify(func(err error, next time.Duration) {
				onRetry(chunkIndex, err, next)
			}))
		}

		_, err := backoff.Retry(ctx, func() (struct{}, error) {
			return struct{}{}, commit(ctx, chunk)
		}, opts...)
		if err != nil {
			var perm *backoff.PermanentError
			if errors.As(err, &perm) {
				err = perm.Unwrap()
			}
			return &Error{
				FailedChunk:     i,
				CommittedChunks: i,
				TotalChunks:     len(chunks),
				CommittedOps:    committedOps,
				TotalOps:        len(ops),
				Err:             err,
			}
		}
		committedOps += len(chunk)
	}
	return nil
}

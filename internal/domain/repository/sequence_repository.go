package repository

import "context"

// SequenceRepository backs the numbering sequencer. Increment must allocate
// atomically at the storage layer: increment-and-read as one operation, so
// two concurrent allocators can never observe the same value.
type SequenceRepository interface {
	Increment(ctx context.Context, scope, docType string) (int64, error)
}

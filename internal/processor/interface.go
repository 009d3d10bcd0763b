package processor

import (
	"context"

	"audiowise/internal/resolver"
)

// Processor drives work items through the pipeline stages.
type Processor interface {
	// Run processes items sequentially in order. Cancellation of ctx
	// stops the batch at the next safe point; a single item's failure
	// never aborts the batch.
	Run(ctx context.Context, items []*resolver.WorkItem) Stats
	// Process runs one work item through skip check and all stages.
	Process(ctx context.Context, item *resolver.WorkItem) error
}

package resolver

import "context"

// Resolver expands an input reference into work items.
type Resolver interface {
	Resolve(ctx context.Context, input, output string) ([]*WorkItem, error)
}

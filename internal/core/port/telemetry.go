package port

import "context"

// Metrics lets the use cases count operations without knowing the backend.
type Metrics interface {
	RecordAuthOperation(ctx context.Context, operation string, outcome string)
	RecordTaskOperation(ctx context.Context, operation string, outcome string)
}

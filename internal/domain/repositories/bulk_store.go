package repositories

import "context"

// Record is a field-mapping destined for one table row. Keys are column
// names; a key the table schema does not declare fails the whole batch.
type Record map[string]any

// BulkStore is the generic batch interface every entity table implements.
type BulkStore interface {
	// BulkAdd inserts all records in one statement and returns the generated
	// primary keys. Empty input returns (nil, nil) without touching the
	// store. When sorted is true the returned ids are guaranteed to align
	// positionally with the input slice; when false callers must not rely
	// on the order.
	BulkAdd(ctx context.Context, records []Record, sorted bool) ([]int64, error)

	// BulkUpdate updates existing rows matched by the "id" key of each
	// record. Empty input is a no-op.
	BulkUpdate(ctx context.Context, records []Record) error
}

package repositories

import "context"

// SchemaManager resets the relational schema. A fresh import assumes the
// store was reset beforehand.
type SchemaManager interface {
	Reset(ctx context.Context) error
}

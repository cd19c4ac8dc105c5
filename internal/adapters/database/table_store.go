package database

import (
	"context"
	"database/sql"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"

	"github.com/petsitly/SitterSearchRanking/backend/internal/domain/repositories"
	apperrors "github.com/petsitly/SitterSearchRanking/backend/pkg/errors"
)

var dialect = goqu.Dialect("postgres")

// DBTX is satisfied by both *sql.DB and *sql.Tx, so the same adapters run
// inside or outside the import transaction.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

// TableStore implements the generic bulk interface for one table.
type TableStore struct {
	run   DBTX
	table string
}

// NewTableStore creates a bulk store bound to a table and a runner.
func NewTableStore(run DBTX, table string) *TableStore {
	return &TableStore{run: run, table: table}
}

// BulkAdd inserts all records in a single multi-row INSERT ... RETURNING id
// and collects the generated keys. A single VALUES list is evaluated in
// order by Postgres, so the returned ids align positionally with the input;
// the sorted flag is how callers state that they rely on this (with
// sorted=false the order is an implementation detail and may change).
//
// Empty input returns (nil, nil) without issuing a store operation. A record
// key the table does not declare as a column fails the whole statement with
// the driver's undefined-column error; nothing is inserted.
func (s *TableStore) BulkAdd(ctx context.Context, records []repositories.Record, sorted bool) ([]int64, error) {
	if len(records) == 0 {
		return nil, nil
	}

	rows := make([]any, len(records))
	for i, r := range records {
		rows[i] = goqu.Record(r)
	}

	query, args, err := dialect.Insert(s.table).
		Prepared(true).
		Rows(rows...).
		Returning("id").
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build bulk insert for "+s.table, err)
	}

	res, err := s.run.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewSchemaError("bulk insert into "+s.table+" rejected", err)
	}
	defer res.Close()

	ids := make([]int64, 0, len(records))
	for res.Next() {
		var id int64
		if err := res.Scan(&id); err != nil {
			return nil, apperrors.NewInternalError("failed to scan generated id from "+s.table, err)
		}
		ids = append(ids, id)
	}
	if err := res.Err(); err != nil {
		return nil, apperrors.NewSchemaError("bulk insert into "+s.table+" rejected", err)
	}

	return ids, nil
}

// BulkUpdate updates existing rows matched on the "id" key of each record.
// Empty input is a no-op. All statements run on the session's transaction,
// so a rejected record aborts the whole batch at commit-boundary level.
func (s *TableStore) BulkUpdate(ctx context.Context, records []repositories.Record) error {
	for _, r := range records {
		id, ok := r["id"]
		if !ok {
			return apperrors.NewValidationError("bulk update record for " + s.table + " is missing id")
		}

		values := goqu.Record{}
		for k, v := range r {
			if k != "id" {
				values[k] = v
			}
		}

		query, args, err := dialect.Update(s.table).
			Prepared(true).
			Set(values).
			Where(goqu.Ex{"id": id}).
			ToSQL()
		if err != nil {
			return apperrors.NewInternalError("failed to build bulk update for "+s.table, err)
		}

		if _, err := s.run.ExecContext(ctx, query, args...); err != nil {
			return apperrors.NewSchemaError("bulk update of "+s.table+" rejected", err)
		}
	}

	return nil
}

package database

import (
	"context"

	apperrors "github.com/petsitly/SitterSearchRanking/backend/pkg/errors"
)

// schemaDDL creates the import schema in FK dependency order. Constraints
// (unique email, the one-review-per-booking triple, FK nullability) live
// here, not in the ETL logic.
var schemaDDL = []string{
	`CREATE TABLE users (
		id           serial PRIMARY KEY,
		name         text NOT NULL,
		email        text UNIQUE,
		phone_number text,
		image        text,
		created_on   timestamptz NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE sitters (
		id                integer PRIMARY KEY REFERENCES users (id),
		name              text NOT NULL,
		email             text,
		phone_number      text,
		image             text,
		number_of_reviews integer,
		sum_of_reviews    integer
	)`,
	`CREATE TABLE bookings (
		id             serial PRIMARY KEY,
		sitter_id      integer REFERENCES users (id),
		owner_id       integer REFERENCES users (id),
		request_date   timestamptz NOT NULL DEFAULT now(),
		confirmed_date timestamptz,
		start_date     timestamptz NOT NULL,
		end_date       timestamptz
	)`,
	`CREATE TABLE reviews (
		id          serial PRIMARY KEY,
		rating      integer NOT NULL,
		description text,
		reviewer    integer REFERENCES users (id),
		reviewee    integer REFERENCES users (id),
		booking_id  integer REFERENCES bookings (id),
		created_on  timestamptz NOT NULL DEFAULT now(),
		UNIQUE (booking_id, reviewer, reviewee)
	)`,
	`CREATE TABLE pets (
		id         serial PRIMARY KEY,
		name       text NOT NULL,
		owner_id   integer REFERENCES users (id),
		created_on timestamptz NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE dogs (
		id         integer PRIMARY KEY REFERENCES pets (id),
		name       text NOT NULL,
		owner_id   integer REFERENCES users (id),
		created_on timestamptz NOT NULL DEFAULT now()
	)`,
}

// dropDDL removes the schema in reverse dependency order.
var dropDDL = []string{
	`DROP TABLE IF EXISTS dogs`,
	`DROP TABLE IF EXISTS pets`,
	`DROP TABLE IF EXISTS reviews`,
	`DROP TABLE IF EXISTS bookings`,
	`DROP TABLE IF EXISTS sitters`,
	`DROP TABLE IF EXISTS users`,
}

// SchemaAdapter implements schema reset for a fresh import run.
type SchemaAdapter struct {
	run DBTX
}

// NewSchemaAdapter creates a schema adapter.
func NewSchemaAdapter(run DBTX) *SchemaAdapter {
	return &SchemaAdapter{run: run}
}

// Reset drops and recreates all tables.
func (a *SchemaAdapter) Reset(ctx context.Context) error {
	for _, stmt := range dropDDL {
		if _, err := a.run.ExecContext(ctx, stmt); err != nil {
			return apperrors.NewSchemaError("failed to drop table", err)
		}
	}
	for _, stmt := range schemaDDL {
		if _, err := a.run.ExecContext(ctx, stmt); err != nil {
			return apperrors.NewSchemaError("failed to create table", err)
		}
	}
	return nil
}

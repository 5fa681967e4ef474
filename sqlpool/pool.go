// Copyright 2016 Volker Dobler.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package sqlpool provides the database handle shared by all test cases of
// a suite. Queries are opaque functions run inside a transaction.
package sqlpool

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/go-sql-driver/mysql"
)

// Query is an opaque unit of database work.
type Query func(ctx context.Context, tx *sql.Tx) error

// Pool wraps a *sql.DB which does its own connection pooling.
type Pool struct {
	db *sql.DB
}

// ParseDSN validates a MySQL data source name.
func ParseDSN(dsn string) (*mysql.Config, error) {
	cfg, err := mysql.ParseDSN(dsn)
	if err != nil {
		return nil, fmt.Errorf("sqlpool: bad DSN: %s", err)
	}
	return cfg, nil
}

// Open opens a pool for the given driver. MySQL DSNs are validated
// before any connection is made.
func Open(driver, dsn string) (*Pool, error) {
	if driver == "" {
		return nil, fmt.Errorf("sqlpool: missing database driver name")
	}
	if dsn == "" {
		return nil, fmt.Errorf("sqlpool: missing data source name")
	}
	if driver == "mysql" {
		if _, err := ParseDSN(dsn); err != nil {
			return nil, err
		}
	}
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, err
	}
	return New(db), nil
}

// New wraps the already opened db.
func New(db *sql.DB) *Pool {
	return &Pool{db: db}
}

// DB returns the underlying database handle.
func (p *Pool) DB() *sql.DB { return p.db }

// Close closes the underlying database.
func (p *Pool) Close() error { return p.db.Close() }

// Run executes q in a fresh transaction which is committed if q succeeds
// and rolled back otherwise.
func (p *Pool) Run(ctx context.Context, q Query) (err error) {
	tx, err := p.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			panic(r)
		}
	}()
	if err := q(ctx, tx); err != nil {
		if rerr := tx.Rollback(); rerr != nil {
			return fmt.Errorf("%s (rollback failed: %s)", err, rerr)
		}
		return err
	}
	return tx.Commit()
}

// Exec returns a Query executing the statement stmt with args.
func Exec(stmt string, args ...interface{}) Query {
	return func(ctx context.Context, tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, stmt, args...)
		return err
	}
}

// QueryRow returns a Query scanning the single row produced by stmt
// into dest.
func QueryRow(stmt string, args []interface{}, dest ...interface{}) Query {
	return func(ctx context.Context, tx *sql.Tx) error {
		return tx.QueryRowContext(ctx, stmt, args...).Scan(dest...)
	}
}

// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package eventdb archives pool events in sqlite for the query API.
package eventdb

import (
	"context"
	"database/sql"
	"math"

	"github.com/golang/snappy"
	sqlite3 "github.com/mattn/go-sqlite3"
	"github.com/pkg/errors"

	"github.com/vechain/valpool/pez"
)

type EventDB struct {
	path          string
	db            *sql.DB
	driverVersion string
}

// New create or open event db at given path.
func New(path string) (eventDB *EventDB, err error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if eventDB == nil {
			db.Close()
		}
	}()
	// in-memory databases are per connection
	if path == ":memory:" {
		db.SetMaxOpenConns(1)
	}
	if _, err := db.Exec(eventTableSchema); err != nil {
		return nil, err
	}

	driverVer, _, _ := sqlite3.Version()
	return &EventDB{
		path:          path,
		db:            db,
		driverVersion: driverVer,
	}, nil
}

// NewMem create an event db in ram.
func NewMem() (*EventDB, error) {
	return New(":memory:")
}

func (db *EventDB) Close() error {
	return db.db.Close()
}

func (db *EventDB) Path() string {
	return db.path
}

func (db *EventDB) DriverVersion() string {
	return db.driverVersion
}

// Insert writes the events of one block, numbering them in order.
// Events of the same block inserted before are replaced.
func (db *EventDB) Insert(ctx context.Context, block uint32, events []*Event) error {
	if len(events) == 0 {
		return nil
	}
	tx, err := db.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM event WHERE blockNumber = ?", block); err != nil {
		tx.Rollback()
		return err
	}
	for i, ev := range events {
		var account []byte
		if ev.Account != nil {
			account = ev.Account.Bytes()
		}
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO event(blockNumber, eventIndex, name, account, data) VALUES (?, ?, ?, ?, ?)",
			block, i, ev.Name, account, snappy.Encode(nil, ev.Data),
		); err != nil {
			tx.Rollback()
			return err
		}
		ev.BlockNumber = block
		ev.Index = uint32(i)
	}
	return tx.Commit()
}

// Filter returns events matching filter.
func (db *EventDB) Filter(ctx context.Context, filter *Filter) ([]*Event, error) {
	if filter == nil {
		filter = &Filter{}
	}
	var args []any
	stmt := "SELECT blockNumber, eventIndex, name, account, data FROM event WHERE 1"
	if filter.Range != nil {
		stmt += " AND blockNumber >= ?"
		args = append(args, filter.Range.From)
		if filter.Range.To >= filter.Range.From {
			stmt += " AND blockNumber <= ?"
			args = append(args, filter.Range.To)
		}
	}
	if filter.Name != "" {
		stmt += " AND name = ?"
		args = append(args, filter.Name)
	}
	if filter.Account != nil {
		stmt += " AND account = ?"
		args = append(args, filter.Account.Bytes())
	}
	if filter.Order == DESC {
		stmt += " ORDER BY blockNumber DESC, eventIndex DESC"
	} else {
		stmt += " ORDER BY blockNumber ASC, eventIndex ASC"
	}
	if filter.Options != nil {
		limit := filter.Options.Limit
		if limit == 0 || limit > math.MaxInt64 {
			limit = math.MaxInt64
		}
		stmt += " LIMIT ?, ?"
		args = append(args, filter.Options.Offset, limit)
	}
	return db.query(ctx, stmt, args...)
}

// LatestBlock returns the highest block with archived events.
func (db *EventDB) LatestBlock(ctx context.Context) (uint32, error) {
	var n sql.NullInt64
	if err := db.db.QueryRowContext(ctx, "SELECT MAX(blockNumber) FROM event").Scan(&n); err != nil {
		return 0, err
	}
	return uint32(n.Int64), nil
}

func (db *EventDB) query(ctx context.Context, stmt string, args ...any) ([]*Event, error) {
	rows, err := db.db.QueryContext(ctx, stmt, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []*Event
	for rows.Next() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		var (
			ev         Event
			account    []byte
			compressed []byte
		)
		if err := rows.Scan(&ev.BlockNumber, &ev.Index, &ev.Name, &account, &compressed); err != nil {
			return nil, err
		}
		if len(account) > 0 {
			addr := pez.BytesToAddress(account)
			ev.Account = &addr
		}
		data, err := snappy.Decode(nil, compressed)
		if err != nil {
			return nil, errors.Wrap(err, "decode event data")
		}
		ev.Data = data
		events = append(events, &ev)
	}
	return events, rows.Err()
}

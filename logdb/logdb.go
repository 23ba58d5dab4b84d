// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package logdb

import (
	"context"
	"database/sql"
	"fmt"
	"math"

	sqlite3 "github.com/mattn/go-sqlite3"
	"github.com/pkg/errors"

	"github.com/vechain/thor-vault/thor"
	"github.com/vechain/thor-vault/tx"
)

const (
	insertEventStmt = "INSERT INTO event(seq, caller, address, topic0, topic1, topic2, topic3, data) VALUES (?, ?, ?, ?, ?, ?, ?, ?)"
	maxSeqStmt      = "SELECT MAX(seq) FROM event"
	ledgerSeqStmt   = "SELECT MAX(seq) FROM event WHERE seq >= ? AND seq <= ?"
)

// LogDB stores the events of applied invocations in sqlite.
type LogDB struct {
	path          string
	db            *sql.DB
	driverVersion string
	stmtCache     *stmtCache
}

// New create or open log db at given path.
func New(path string) (logDB *LogDB, err error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if logDB == nil {
			db.Close()
		}
	}()
	// a single connection keeps the in-memory db alive and serializes writers,
	// statements are therefore prepared up front
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(eventTableSchema); err != nil {
		return nil, err
	}

	stmts, err := prepareStmts(db, insertEventStmt, maxSeqStmt, ledgerSeqStmt)
	if err != nil {
		return nil, err
	}

	driverVer, _, _ := sqlite3.Version()
	return &LogDB{
		path:          path,
		db:            db,
		driverVersion: driverVer,
		stmtCache:     stmts,
	}, nil
}

// NewMem create a log db in ram.
func NewMem() (*LogDB, error) {
	return New(":memory:")
}

// Close close the log db.
func (db *LogDB) Close() error {
	db.stmtCache.Close()
	return db.db.Close()
}

func (db *LogDB) Path() string {
	return db.path
}

// DriverVersion returns the version of the sqlite library.
func (db *LogDB) DriverVersion() string {
	return db.driverVersion
}

// NewestLedger returns the ledger of the newest stored event, 0 if empty.
func (db *LogDB) NewestLedger() (uint32, error) {
	var seq sql.NullInt64
	if err := db.stmtCache.Get(maxSeqStmt).QueryRow().Scan(&seq); err != nil {
		return 0, err
	}
	if !seq.Valid {
		return 0, nil
	}
	return sequence(seq.Int64).Ledger(), nil
}

// Write stores the events of the receipt. Events of a ledger are indexed in write order.
func (db *LogDB) Write(receipt *tx.Receipt) error {
	if len(receipt.Events) == 0 {
		return nil
	}
	return db.execInTx(func(tx *sql.Tx) error {
		var last sql.NullInt64
		if err := tx.Stmt(db.stmtCache.Get(ledgerSeqStmt)).QueryRow(
			newSequence(receipt.Ledger, 0),
			newSequence(receipt.Ledger, math.MaxInt32),
		).Scan(&last); err != nil {
			return err
		}
		var index uint32
		if last.Valid {
			index = sequence(last.Int64).Index() + 1
		}

		insert := tx.Stmt(db.stmtCache.Get(insertEventStmt))
		for _, e := range receipt.Events {
			ev := newEvent(receipt.Ledger, index, receipt.Caller, e)
			if _, err := insert.Exec(
				newSequence(ev.Ledger, ev.Index),
				ev.Caller.Bytes(),
				ev.Address.Bytes(),
				topicValue(ev.Topics[0]),
				topicValue(ev.Topics[1]),
				topicValue(ev.Topics[2]),
				topicValue(ev.Topics[3]),
				ev.Data,
			); err != nil {
				return errors.Wrap(err, "failed to insert event")
			}
			index++
		}
		return nil
	})
}

func (db *LogDB) FilterEvents(ctx context.Context, filter *EventFilter) ([]*Event, error) {
	if filter == nil {
		return db.queryEvents(ctx, "SELECT seq, caller, address, topic0, topic1, topic2, topic3, data FROM event ORDER BY seq ASC")
	}
	metricsHandleEventsFilter(filter)

	var args []any
	stmt := "SELECT seq, caller, address, topic0, topic1, topic2, topic3, data FROM event WHERE 1"
	if filter.Range != nil {
		args = append(args, newSequence(filter.Range.From, 0))
		stmt += " AND seq >= ? "
		if filter.Range.To >= filter.Range.From {
			args = append(args, newSequence(filter.Range.To, math.MaxInt32))
			stmt += " AND seq <= ? "
		}
	}
	for i, criteria := range filter.CriteriaSet {
		if i == 0 {
			stmt += " AND (( 1"
		} else {
			stmt += " OR ( 1"
		}
		if criteria.Address != nil {
			args = append(args, criteria.Address.Bytes())
			stmt += " AND address = ? "
		}
		for j, topic := range criteria.Topics {
			if topic != nil {
				args = append(args, topic.Bytes())
				stmt += fmt.Sprintf(" AND topic%v = ?", j)
			}
		}
		stmt += ")"
		if i == len(filter.CriteriaSet)-1 {
			stmt += ")"
		}
	}

	if filter.Order == DESC {
		stmt += " ORDER BY seq DESC "
	} else {
		stmt += " ORDER BY seq ASC "
	}

	if filter.Options != nil {
		stmt += " LIMIT ?, ? "
		args = append(args, filter.Options.Offset, filter.Options.Limit)
	}
	return db.queryEvents(ctx, stmt, args...)
}

func (db *LogDB) queryEvents(ctx context.Context, stmt string, args ...any) ([]*Event, error) {
	rows, err := db.db.QueryContext(ctx, stmt, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []*Event
	for rows.Next() {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}
		var (
			seq     int64
			caller  []byte
			address []byte
			topics  [4][]byte
			data    []byte
		)
		if err := rows.Scan(
			&seq,
			&caller,
			&address,
			&topics[0],
			&topics[1],
			&topics[2],
			&topics[3],
			&data,
		); err != nil {
			return nil, err
		}
		event := &Event{
			Ledger:  sequence(seq).Ledger(),
			Index:   sequence(seq).Index(),
			Caller:  thor.BytesToAddress(caller),
			Address: thor.BytesToAddress(address),
			Data:    data,
		}
		for i, topic := range topics {
			if len(topic) > 0 {
				h := thor.BytesToBytes32(topic)
				event.Topics[i] = &h
			}
		}
		events = append(events, event)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return events, nil
}

func (db *LogDB) execInTx(proc func(*sql.Tx) error) (err error) {
	tx, err := db.db.Begin()
	if err != nil {
		return err
	}
	if err := proc(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

func topicValue(topic *thor.Bytes32) []byte {
	if topic == nil {
		return nil
	}
	return topic.Bytes()
}

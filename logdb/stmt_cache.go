// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package logdb

import (
	"database/sql"

	"github.com/pkg/errors"
)

// stmtCache holds the statements of the event log, all prepared when the db opens.
// The pool has a single connection, so nothing may be prepared while a write
// transaction holds it.
type stmtCache struct {
	stmts map[string]*sql.Stmt
}

func prepareStmts(db *sql.DB, queries ...string) (*stmtCache, error) {
	sc := &stmtCache{stmts: make(map[string]*sql.Stmt, len(queries))}
	for _, q := range queries {
		stmt, err := db.Prepare(q)
		if err != nil {
			sc.Close()
			return nil, errors.Wrapf(err, "prepare %q", q)
		}
		sc.stmts[q] = stmt
	}
	return sc, nil
}

// Get returns the prepared statement of query. Queries are package constants, an
// unknown one is a programming error.
func (sc *stmtCache) Get(query string) *sql.Stmt {
	stmt, ok := sc.stmts[query]
	if !ok {
		panic("logdb: statement not prepared: " + query)
	}
	return stmt
}

func (sc *stmtCache) Close() {
	for _, stmt := range sc.stmts {
		_ = stmt.Close()
	}
}

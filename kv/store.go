// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package kv

// Getter reads records of the vault db.
type Getter interface {
	Get(key []byte) ([]byte, error)
	Has(key []byte) (bool, error)
	IsNotFound(err error) bool
}

// Putter writes records of the vault db.
type Putter interface {
	Put(key, val []byte) error
	Delete(key []byte) error
}

// Bulk collects the writes of one committed invocation. Nothing is visible
// until Write, which applies all of them or none.
type Bulk interface {
	Putter
	Write() error
}

// Store is the vault db: contract storage entries and the runtime head.
type Store interface {
	Getter
	Putter

	Bulk() Bulk
}

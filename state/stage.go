// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import "github.com/vechain/thor-vault/kv"

// Stage abstracts the pending changes of a state.
type Stage struct {
	stater  *Stater
	changes map[storageKey]*entry
}

// Len returns the number of changed entries.
func (s *Stage) Len() int {
	return len(s.changes)
}

// Commit writes all changes into the db atomically. Each of extra may put more
// records into the same batch, with keys outside the storage bucket.
func (s *Stage) Commit(extra ...func(kv.Putter) error) error {
	bulk := s.stater.raw.Bulk()
	storage := storageBucket.NewPutter(bulk)
	for k, e := range s.changes {
		if e == nil {
			if err := storage.Delete(k.bytes()); err != nil {
				return &Error{err}
			}
			continue
		}
		data, err := encodeEntry(e)
		if err != nil {
			return &Error{err}
		}
		if err := storage.Put(k.bytes(), data); err != nil {
			return &Error{err}
		}
	}
	for _, put := range extra {
		if err := put(bulk); err != nil {
			return &Error{err}
		}
	}
	if err := bulk.Write(); err != nil {
		return &Error{err}
	}

	for k, e := range s.changes {
		s.stater.cache.Add(k, e)
	}
	metricEntriesWritten().Add(int64(len(s.changes)))
	return nil
}

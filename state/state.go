// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/vechain/thor-vault/stackedmap"
	"github.com/vechain/thor-vault/thor"
)

// Error is the error caused by state access failure.
type Error struct {
	cause error
}

func (e *Error) Error() string {
	return fmt.Sprintf("state: %v", e.cause)
}

func (e *Error) Unwrap() error {
	return e.cause
}

type storageKey struct {
	addr thor.Address
	key  thor.Bytes32
}

// State is the ledger scoped view of contract storage.
// Every entry carries a live-until ledger. An entry past it is archived: it keeps its
// value and stays readable, and the next write or extension restores it with a
// lifetime counted from the current ledger.
// Changes are journaled and only reach the db when the Stage is committed.
type State struct {
	stater *Stater
	ledger uint32
	sm     *stackedmap.StackedMap
}

func newState(stater *Stater, ledger uint32) *State {
	s := &State{
		stater: stater,
		ledger: ledger,
	}
	s.sm = stackedmap.New(func(key any) (any, bool, error) {
		e, err := stater.load(key.(storageKey))
		if err != nil {
			return nil, false, err
		}
		return e, e != nil, nil
	})
	return s
}

// Ledger returns the ledger height the state is bound to.
func (s *State) Ledger() uint32 {
	return s.ledger
}

func (s *State) getEntry(k storageKey) (*entry, error) {
	v, _, err := s.sm.Get(k)
	if err != nil {
		return nil, &Error{err}
	}
	e, _ := v.(*entry)
	return e, nil
}

// GetRawStorage returns the raw value of the storage entry, nil if absent.
func (s *State) GetRawStorage(addr thor.Address, key thor.Bytes32) ([]byte, error) {
	e, err := s.getEntry(storageKey{addr, key})
	if err != nil {
		return nil, err
	}
	if e == nil {
		return nil, nil
	}
	return e.Value, nil
}

// SetRawStorage sets the raw value of the storage entry. Empty raw deletes the entry.
// A new entry lives for thor.MinPersistentTTL ledgers, an existing entry keeps its
// lifetime unless that is shorter.
func (s *State) SetRawStorage(addr thor.Address, key thor.Bytes32, raw []byte) error {
	k := storageKey{addr, key}
	if len(raw) == 0 {
		s.sm.Put(k, (*entry)(nil))
		return nil
	}
	prev, err := s.getEntry(k)
	if err != nil {
		return err
	}
	until := liveUntil(s.ledger, thor.MinPersistentTTL)
	if prev != nil {
		if bytes.Equal(prev.Value, raw) && !prev.archived(s.ledger) {
			return nil
		}
		if prev.archived(s.ledger) {
			metricEntriesRestored().Add(1)
		}
		until = max(until, prev.LiveUntil)
	}
	s.sm.Put(k, &entry{Value: bytes.Clone(raw), LiveUntil: until})
	return nil
}

// EncodeStorage sets storage value encoded by enc.
func (s *State) EncodeStorage(addr thor.Address, key thor.Bytes32, enc func() ([]byte, error)) error {
	raw, err := enc()
	if err != nil {
		return &Error{err}
	}
	return s.SetRawStorage(addr, key, raw)
}

// DecodeStorage gets and decodes storage value. dec receives nil for absent entries.
func (s *State) DecodeStorage(addr thor.Address, key thor.Bytes32, dec func([]byte) error) error {
	raw, err := s.GetRawStorage(addr, key)
	if err != nil {
		return err
	}
	if err := dec(raw); err != nil {
		return &Error{err}
	}
	return nil
}

// ExtendStorageTTL makes the entry live for at least ledgers more ledgers.
// The lifetime is never shortened. Extending an archived entry restores it.
func (s *State) ExtendStorageTTL(addr thor.Address, key thor.Bytes32, ledgers uint32) error {
	k := storageKey{addr, key}
	e, err := s.getEntry(k)
	if err != nil {
		return err
	}
	if e == nil {
		return &Error{errors.New("extend ttl of missing entry")}
	}
	if target := liveUntil(s.ledger, ledgers); target > e.LiveUntil {
		if e.archived(s.ledger) {
			metricEntriesRestored().Add(1)
		}
		s.sm.Put(k, &entry{Value: e.Value, LiveUntil: target})
	}
	return nil
}

// StorageTTL returns the live-until ledger of the entry, 0 if absent.
// A value below the state ledger means the entry is archived.
func (s *State) StorageTTL(addr thor.Address, key thor.Bytes32) (uint32, error) {
	e, err := s.getEntry(storageKey{addr, key})
	if err != nil || e == nil {
		return 0, err
	}
	return e.LiveUntil, nil
}

// NewCheckpoint makes a checkpoint of current state.
// It returns revision of the checkpoint.
func (s *State) NewCheckpoint() int {
	return s.sm.Push()
}

// RevertTo revert to checkpoint specified by revision.
func (s *State) RevertTo(revision int) {
	s.sm.PopTo(revision)
}

// Stage collects the pending changes into a stage, ready to be committed.
func (s *State) Stage() *Stage {
	changes := make(map[storageKey]*entry)
	s.sm.Journal(func(k, v any) bool {
		changes[k.(storageKey)] = v.(*entry)
		return true
	})
	return &Stage{stater: s.stater, changes: changes}
}

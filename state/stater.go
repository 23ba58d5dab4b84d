// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"github.com/pkg/errors"

	"github.com/vechain/thor-vault/cache"
	"github.com/vechain/thor-vault/kv"
)

const storageBucket = kv.Bucket("s")

// Stater is the state creator. States created by the same stater share a read cache
// of committed entries.
type Stater struct {
	raw   kv.Store
	db    kv.Store
	cache *cache.LRU
}

// NewStater create a new stater.
func NewStater(db kv.Store, cacheSize int) *Stater {
	if cacheSize <= 0 {
		cacheSize = 4096
	}
	c, _ := cache.NewLRU(cacheSize)
	return &Stater{raw: db, db: storageBucket.NewStore(db), cache: c}
}

// NewState create a new state object bound to the given ledger.
func (s *Stater) NewState(ledger uint32) *State {
	return newState(s, ledger)
}

func (k storageKey) bytes() []byte {
	return append(append(make([]byte, 0, len(k.addr)+len(k.key)), k.addr[:]...), k.key[:]...)
}

func (s *Stater) load(k storageKey) (*entry, error) {
	v, err := s.cache.GetOrLoad(k, func(any) (any, error) {
		data, err := s.db.Get(k.bytes())
		if err != nil {
			if s.db.IsNotFound(err) {
				return (*entry)(nil), nil
			}
			return nil, errors.Wrap(err, "load storage")
		}
		return decodeEntry(data)
	})
	if err != nil {
		return nil, err
	}
	e, _ := v.(*entry)
	return e, nil
}

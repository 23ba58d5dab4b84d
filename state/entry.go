// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"github.com/ethereum/go-ethereum/rlp"
)

// entry is the persisted form of a storage value.
type entry struct {
	Value     []byte
	LiveUntil uint32
}

// archived reports whether the entry outlived its lifetime at ledger.
func (e *entry) archived(ledger uint32) bool {
	return e.LiveUntil < ledger
}

// liveUntil returns ledger+ttl, saturated at the max ledger.
func liveUntil(ledger, ttl uint32) uint32 {
	if sum := ledger + ttl; sum >= ledger {
		return sum
	}
	return ^uint32(0)
}

func encodeEntry(e *entry) ([]byte, error) {
	return rlp.EncodeToBytes(e)
}

func decodeEntry(data []byte) (*entry, error) {
	var e entry
	if err := rlp.DecodeBytes(data, &e); err != nil {
		return nil, err
	}
	return &e, nil
}

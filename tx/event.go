// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package tx

import (
	"github.com/vechain/thor-vault/thor"
)

// Event represents a contract event.
type Event struct {
	// address of the contract that generates the event
	Address thor.Address
	// list of topics provided by the contract. Topics[0] is the event symbol.
	Topics []thor.Bytes32
	// supplied by the contract, usually rlp encoded
	Data []byte
}

// Symbol returns the first topic.
func (e *Event) Symbol() thor.Bytes32 {
	if len(e.Topics) == 0 {
		return thor.Bytes32{}
	}
	return e.Topics[0]
}

// Events slice of event logs.
type Events []*Event

// FilterBySymbol returns events with the given first topic.
func (es Events) FilterBySymbol(symbol thor.Bytes32) Events {
	var filtered Events
	for _, e := range es {
		if e.Symbol() == symbol {
			filtered = append(filtered, e)
		}
	}
	return filtered
}

// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package logdb

import (
	"github.com/vechain/thor-vault/thor"
	"github.com/vechain/thor-vault/tx"
)

// Event represents tx.Event that can be stored in db.
type Event struct {
	Ledger  uint32
	Index   uint32
	Caller  thor.Address // the authenticated caller of the invocation
	Address thor.Address // always a contract address
	Topics  [4]*thor.Bytes32
	Data    []byte
}

// newEvent converts tx.Event to Event.
func newEvent(ledger, index uint32, caller thor.Address, txEvent *tx.Event) *Event {
	ev := &Event{
		Ledger:  ledger,
		Index:   index,
		Caller:  caller,
		Address: txEvent.Address,
		Data:    txEvent.Data,
	}
	for i := 0; i < len(txEvent.Topics) && i < len(ev.Topics); i++ {
		topic := txEvent.Topics[i]
		ev.Topics[i] = &topic
	}
	return ev
}

type Order string

const (
	ASC  Order = "asc"
	DESC Order = "desc"
)

// Range is an inclusive ledger range. To lower than From means no upper bound.
type Range struct {
	From uint32
	To   uint32
}

type Options struct {
	Offset uint64
	Limit  uint64
}

type EventCriteria struct {
	Address *thor.Address // always a contract address
	Topics  [4]*thor.Bytes32
}

// EventFilter matches events satisfying any of the criteria.
type EventFilter struct {
	CriteriaSet []*EventCriteria
	Range       *Range
	Options     *Options
	Order       Order // default asc
}

// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package delegation

import (
	"github.com/vechain/thor-vault/thor"
)

type HistoryEvent = uint8

const (
	EventUnknown = HistoryEvent(iota)
	EventCreated
	EventRevoked
	EventExpired
	EventVoteDelegated
)

// HistoryEntry is an audit record of a delegator.
type HistoryEntry struct {
	Event    HistoryEvent
	Delegate thor.Address
	AtLedger uint32
	// Closed marks a Created entry ended by a Revoked or Expired entry at ClosedAt.
	Closed   bool
	ClosedAt uint32
	// ProposalID is the proposal voted on, only for VoteDelegated entries.
	ProposalID uint64
}

// History is the append-only sequence of entries of a delegator.
type History []HistoryEntry

// openIndex returns the index of the last Created entry not closed yet, -1 if none.
func (h History) openIndex() int {
	for i := len(h) - 1; i >= 0; i-- {
		if h[i].Event == EventCreated {
			if !h[i].Closed {
				return i
			}
			return -1
		}
	}
	return -1
}

func (e *HistoryEntry) close(ledger uint32) {
	e.Closed = true
	e.ClosedAt = ledger
}

// Filter returns the entries of the given event, in append order.
func (h History) Filter(event HistoryEvent) History {
	var filtered History
	for _, e := range h {
		if e.Event == event {
			filtered = append(filtered, e)
		}
	}
	return filtered
}

// EventName returns the display name of a history event.
func EventName(e HistoryEvent) string {
	switch e {
	case EventCreated:
		return "created"
	case EventRevoked:
		return "revoked"
	case EventExpired:
		return "expired"
	case EventVoteDelegated:
		return "delegated_vote"
	default:
		return "unknown"
	}
}

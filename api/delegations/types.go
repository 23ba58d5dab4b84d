// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package delegations

import (
	"github.com/vechain/thor-vault/builtin/delegation"
	"github.com/vechain/thor-vault/thor"
)

type Delegation struct {
	Delegator    thor.Address `json:"delegator"`
	Delegate     thor.Address `json:"delegate"`
	ExpiryLedger uint32       `json:"expiryLedger"`
	Permanent    bool         `json:"permanent"`
	Status       string       `json:"status"`
	CreatedAt    uint32       `json:"createdAt"`
}

func convertDelegation(d *delegation.Delegation) *Delegation {
	return &Delegation{
		Delegator:    d.Delegator,
		Delegate:     d.Delegate,
		ExpiryLedger: d.ExpiryLedger,
		Permanent:    d.IsPermanent(),
		Status:       delegation.StatusName(d.Status),
		CreatedAt:    d.CreatedAt,
	}
}

type HistoryEntry struct {
	Event      string       `json:"event"`
	Delegate   thor.Address `json:"delegate"`
	AtLedger   uint32       `json:"atLedger"`
	ClosedAt   *uint32      `json:"closedAt,omitempty"`
	ProposalID *uint64      `json:"proposalId,omitempty"`
}

func convertHistory(h delegation.History) []*HistoryEntry {
	entries := make([]*HistoryEntry, 0, len(h))
	for _, e := range h {
		entry := &HistoryEntry{
			Event:    delegation.EventName(e.Event),
			Delegate: e.Delegate,
			AtLedger: e.AtLedger,
		}
		if e.Closed {
			closedAt := e.ClosedAt
			entry.ClosedAt = &closedAt
		}
		if e.Event == delegation.EventVoteDelegated {
			id := e.ProposalID
			entry.ProposalID = &id
		}
		entries = append(entries, entry)
	}
	return entries
}

type EffectiveVoter struct {
	Voter     thor.Address `json:"voter"`
	Effective thor.Address `json:"effective"`
	Delegated bool         `json:"delegated"`
	Ledger    uint32       `json:"ledger"`
}

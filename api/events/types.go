// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package events

import (
	"github.com/ethereum/go-ethereum/common/hexutil"

	"github.com/vechain/thor-vault/builtin/delegation"
	"github.com/vechain/thor-vault/builtin/vault"
	"github.com/vechain/thor-vault/logdb"
	"github.com/vechain/thor-vault/thor"
)

var symbolNames = func() map[thor.Bytes32]string {
	names := make(map[thor.Bytes32]string)
	for _, name := range []string{
		"delegation_created",
		"delegation_revoked",
		"delegation_expired",
		"delegated_vote",
		"proposal_created",
		"proposal_approved",
		"vote_cast",
	} {
		names[thor.NameToSlot(name)] = name
	}
	return names
}()

// Decoded is the payload of a known event.
type Decoded struct {
	AtLedger     uint32  `json:"atLedger"`
	ExpiryLedger *uint32 `json:"expiryLedger,omitempty"`
	ProposalID   *uint64 `json:"proposalId,omitempty"`
	Hash         string  `json:"hash,omitempty"`
	Vote         string  `json:"vote,omitempty"`
}

type FilteredEvent struct {
	Name    string        `json:"name,omitempty"`
	Ledger  uint32        `json:"ledger"`
	Index   uint32        `json:"index"`
	Caller  thor.Address  `json:"caller"`
	Address thor.Address  `json:"address"`
	Topics  []string      `json:"topics"`
	Data    hexutil.Bytes `json:"data"`
	Decoded *Decoded      `json:"decoded,omitempty"`
}

func convertEvent(e *logdb.Event) *FilteredEvent {
	fe := &FilteredEvent{
		Ledger:  e.Ledger,
		Index:   e.Index,
		Caller:  e.Caller,
		Address: e.Address,
		Topics:  make([]string, 0, len(e.Topics)),
		Data:    e.Data,
	}
	for _, topic := range e.Topics {
		if topic != nil {
			fe.Topics = append(fe.Topics, topic.String())
		}
	}
	if e.Topics[0] != nil {
		fe.Name = symbolNames[*e.Topics[0]]
		fe.Decoded = decode(*e.Topics[0], e.Data)
	}
	return fe
}

// decode returns nil for unknown symbols or undecodable payloads.
func decode(symbol thor.Bytes32, data []byte) *Decoded {
	switch symbol {
	case delegation.DelegationCreatedEvent, delegation.DelegationRevokedEvent,
		delegation.DelegationExpiredEvent, delegation.DelegatedVoteEvent:
		ed, err := delegation.DecodeEventData(data)
		if err != nil {
			return nil
		}
		d := &Decoded{AtLedger: ed.AtLedger}
		if symbol == delegation.DelegatedVoteEvent {
			d.ProposalID = &ed.ProposalID
		} else {
			d.ExpiryLedger = &ed.ExpiryLedger
		}
		return d
	case vault.ProposalCreatedEvent, vault.ProposalApprovedEvent, vault.VoteCastEvent:
		ed, err := vault.DecodeProposalEventData(data)
		if err != nil {
			return nil
		}
		d := &Decoded{
			AtLedger:   ed.AtLedger,
			ProposalID: &ed.ProposalID,
			Hash:       ed.Hash.String(),
		}
		if symbol == vault.VoteCastEvent {
			d.Vote = vault.VoteName(ed.Kind)
		}
		return d
	}
	return nil
}

// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package vault

import (
	"github.com/ethereum/go-ethereum/rlp"

	"github.com/vechain/thor-vault/thor"
)

var (
	ProposalCreatedEvent  = thor.NameToSlot("proposal_created")
	ProposalApprovedEvent = thor.NameToSlot("proposal_approved")
	VoteCastEvent         = thor.NameToSlot("vote_cast")
)

// ProposalEventData is the rlp payload of proposal events.
type ProposalEventData struct {
	ProposalID uint64
	Hash       thor.Bytes32
	Kind       VoteKind
	AtLedger   uint32
}

func DecodeProposalEventData(data []byte) (*ProposalEventData, error) {
	var ed ProposalEventData
	if err := rlp.DecodeBytes(data, &ed); err != nil {
		return nil, err
	}
	return &ed, nil
}

func (v *Vault) emit(symbol thor.Bytes32, subject thor.Address, data *ProposalEventData) error {
	if v.emitter == nil {
		return nil
	}
	payload, err := rlp.EncodeToBytes(data)
	if err != nil {
		return err
	}
	v.emitter.Emit([]thor.Bytes32{symbol, thor.BytesToBytes32(subject.Bytes())}, payload)
	return nil
}

// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package delegation

import (
	"github.com/ethereum/go-ethereum/rlp"

	"github.com/vechain/thor-vault/thor"
)

// Event symbols, the first topic of every event.
var (
	DelegationCreatedEvent = thor.NameToSlot("delegation_created")
	DelegationRevokedEvent = thor.NameToSlot("delegation_revoked")
	DelegationExpiredEvent = thor.NameToSlot("delegation_expired")
	DelegatedVoteEvent     = thor.NameToSlot("delegated_vote")
)

// Emitter receives the events of the delegation service.
type Emitter interface {
	Emit(topics []thor.Bytes32, data []byte)
}

// EventData is the rlp payload of delegation events.
type EventData struct {
	AtLedger     uint32
	ExpiryLedger uint32
	ProposalID   uint64
}

// DecodeEventData decodes the payload of a delegation event.
func DecodeEventData(data []byte) (*EventData, error) {
	var ed EventData
	if err := rlp.DecodeBytes(data, &ed); err != nil {
		return nil, err
	}
	return &ed, nil
}

func (s *Service) emit(symbol thor.Bytes32, delegator, delegate thor.Address, data *EventData) error {
	if s.emitter == nil {
		return nil
	}
	payload, err := rlp.EncodeToBytes(data)
	if err != nil {
		return err
	}
	s.emitter.Emit([]thor.Bytes32{
		symbol,
		thor.BytesToBytes32(delegator.Bytes()),
		thor.BytesToBytes32(delegate.Bytes()),
	}, payload)
	return nil
}

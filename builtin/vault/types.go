// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package vault

import (
	"encoding/binary"
	"math/big"

	"github.com/vechain/thor-vault/thor"
)

// Config is the signer set of the vault and the number of approvals a proposal needs.
type Config struct {
	Signers   []thor.Address
	Threshold uint32
}

type ProposalStatus = uint8

const (
	ProposalUnknown = ProposalStatus(iota)
	ProposalPending
	ProposalApproved
)

type VoteKind = uint8

const (
	VoteUnknown = VoteKind(iota)
	VoteApprove
	VoteAbstain
)

// Ballot is a vote recorded on a proposal. Voter is the effective voter, Caller the
// signer who cast it.
type Ballot struct {
	Voter    thor.Address
	Caller   thor.Address
	Kind     VoteKind
	AtLedger uint32
}

// Proposal is a transfer request awaiting approvals. Executing the transfer is left
// to the treasury.
type Proposal struct {
	ID        uint64
	Hash      thor.Bytes32
	Proposer  thor.Address
	Target    thor.Address
	Amount    *big.Int
	Memo      string
	Status    ProposalStatus
	CreatedAt uint32
	Ballots   []Ballot
}

// IsEmpty returns whether the entry can be treated as empty.
func (p *Proposal) IsEmpty() bool {
	return p == nil || p.Status == ProposalUnknown
}

func (p *Proposal) count(kind VoteKind) uint32 {
	var n uint32
	for _, b := range p.Ballots {
		if b.Kind == kind {
			n++
		}
	}
	return n
}

func (p *Proposal) Approvals() uint32   { return p.count(VoteApprove) }
func (p *Proposal) Abstentions() uint32 { return p.count(VoteAbstain) }

// Ballot returns the ballot recorded under the voter, nil if none.
func (p *Proposal) Ballot(voter thor.Address) *Ballot {
	for i := range p.Ballots {
		if p.Ballots[i].Voter == voter {
			return &p.Ballots[i]
		}
	}
	return nil
}

// Reputation tracks the participation of an effective voter.
type Reputation struct {
	Votes      uint64 // ballots recorded under the address
	Delegated  uint64 // of which cast through a delegation
	LastLedger uint32
}

type proposalKey uint64

func (k proposalKey) Bytes() []byte {
	return binary.BigEndian.AppendUint64(nil, uint64(k))
}

func proposalHash(id uint64, proposer, target thor.Address, amount *big.Int, memo string) thor.Bytes32 {
	return thor.Keccak256(
		binary.BigEndian.AppendUint64(nil, id),
		proposer.Bytes(),
		target.Bytes(),
		amount.Bytes(),
		[]byte(memo),
	)
}

func StatusName(s ProposalStatus) string {
	switch s {
	case ProposalPending:
		return "pending"
	case ProposalApproved:
		return "approved"
	default:
		return "unknown"
	}
}

func VoteName(k VoteKind) string {
	switch k {
	case VoteApprove:
		return "approve"
	case VoteAbstain:
		return "abstain"
	default:
		return "unknown"
	}
}

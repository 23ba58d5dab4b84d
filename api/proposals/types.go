// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package proposals

import (
	"github.com/ethereum/go-ethereum/common/math"

	"github.com/vechain/thor-vault/builtin/vault"
	"github.com/vechain/thor-vault/thor"
)

type Ballot struct {
	Voter    thor.Address `json:"voter"`
	Caller   thor.Address `json:"caller"`
	Vote     string       `json:"vote"`
	AtLedger uint32       `json:"atLedger"`
}

type Proposal struct {
	ID          uint64                `json:"id"`
	Hash        string                `json:"hash"`
	Proposer    thor.Address          `json:"proposer"`
	Target      thor.Address          `json:"target"`
	Amount      *math.HexOrDecimal256 `json:"amount"`
	Memo        string                `json:"memo"`
	Status      string                `json:"status"`
	CreatedAt   uint32                `json:"createdAt"`
	Approvals   uint32                `json:"approvals"`
	Abstentions uint32                `json:"abstentions"`
	Ballots     []*Ballot             `json:"ballots"`
}

func convertProposal(p *vault.Proposal) *Proposal {
	ballots := make([]*Ballot, 0, len(p.Ballots))
	for _, b := range p.Ballots {
		ballots = append(ballots, &Ballot{
			Voter:    b.Voter,
			Caller:   b.Caller,
			Vote:     vault.VoteName(b.Kind),
			AtLedger: b.AtLedger,
		})
	}
	return &Proposal{
		ID:          p.ID,
		Hash:        p.Hash.String(),
		Proposer:    p.Proposer,
		Target:      p.Target,
		Amount:      (*math.HexOrDecimal256)(p.Amount),
		Memo:        p.Memo,
		Status:      vault.StatusName(p.Status),
		CreatedAt:   p.CreatedAt,
		Approvals:   p.Approvals(),
		Abstentions: p.Abstentions(),
		Ballots:     ballots,
	}
}

type Signers struct {
	Signers   []thor.Address `json:"signers"`
	Threshold uint32         `json:"threshold"`
}

type Reputation struct {
	Address    thor.Address `json:"address"`
	Votes      uint64       `json:"votes"`
	Delegated  uint64       `json:"delegated"`
	LastLedger uint32       `json:"lastLedger"`
}

func convertReputation(addr thor.Address, r *vault.Reputation) *Reputation {
	return &Reputation{
		Address:    addr,
		Votes:      r.Votes,
		Delegated:  r.Delegated,
		LastLedger: r.LastLedger,
	}
}

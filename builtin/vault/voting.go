// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package vault

import (
	"github.com/vechain/thor-vault/thor"
)

// Approve approves the proposal on behalf of the effective voter of voter.
func (v *Vault) Approve(voter thor.Address, proposalID uint64) error {
	return v.castVote(voter, proposalID, VoteApprove)
}

// Abstain abstains from the proposal on behalf of the effective voter of voter.
func (v *Vault) Abstain(voter thor.Address, proposalID uint64) error {
	return v.castVote(voter, proposalID, VoteAbstain)
}

func (v *Vault) castVote(voter thor.Address, proposalID uint64, kind VoteKind) error {
	logger.Debug("casting vote", "voter", voter, "proposal", proposalID, "vote", VoteName(kind))

	ok, err := v.IsSigner(voter)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotSigner
	}
	p, err := v.Proposal(proposalID)
	if err != nil {
		return err
	}
	if p.Status != ProposalPending {
		return ErrProposalClosed
	}

	effective, err := v.delegations.EffectiveVoter(voter)
	if err != nil {
		return err
	}
	// a delegator and its delegate share one vote
	if p.Ballot(effective) != nil {
		logger.Info("vote rejected", "voter", voter, "effective", effective, "proposal", proposalID, "error", ErrAlreadyVoted)
		return ErrAlreadyVoted
	}

	p.Ballots = append(p.Ballots, Ballot{
		Voter:    effective,
		Caller:   voter,
		Kind:     kind,
		AtLedger: v.now,
	})
	cfg, err := v.getConfig()
	if err != nil {
		return err
	}
	approved := kind == VoteApprove && p.Approvals() >= cfg.Threshold
	if approved {
		p.Status = ProposalApproved
	}
	if err := v.setProposal(p, false); err != nil {
		return err
	}

	delegated := effective != voter
	if delegated {
		if err := v.delegations.RecordDelegatedVote(voter, effective, proposalID); err != nil {
			return err
		}
	}
	if err := v.credit(effective, delegated); err != nil {
		return err
	}

	if err := v.emit(VoteCastEvent, effective, &ProposalEventData{ProposalID: p.ID, Hash: p.Hash, Kind: kind, AtLedger: v.now}); err != nil {
		return err
	}
	metricVotes().AddWithLabel(1, map[string]string{"vote": VoteName(kind), "delegated": boolLabel(delegated)})

	if approved {
		if err := v.emit(ProposalApprovedEvent, p.Proposer, &ProposalEventData{ProposalID: p.ID, Hash: p.Hash, AtLedger: v.now}); err != nil {
			return err
		}
		logger.Info("proposal approved", "id", p.ID, "approvals", p.Approvals())
	}
	logger.Info("vote cast", "voter", voter, "effective", effective, "proposal", proposalID)
	return nil
}

func boolLabel(b bool) string {
	if b {
		return "true"
	}
	return "false"
}

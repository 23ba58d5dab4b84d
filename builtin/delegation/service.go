// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package delegation

import (
	"github.com/pkg/errors"

	"github.com/vechain/thor-vault/builtin/solidity"
	"github.com/vechain/thor-vault/log"
	"github.com/vechain/thor-vault/thor"
)

var logger = log.WithContext("pkg", "delegation")

// SignerChecker tells whether an address is a signer of the vault.
type SignerChecker interface {
	IsSigner(addr thor.Address) (bool, error)
}

// Service manages the delegations of vault signers. It is bound to the ledger of
// the state it was created on.
type Service struct {
	storage *storage
	signers SignerChecker
	emitter Emitter
	now     uint32
}

func New(sctx *solidity.Context, signers SignerChecker, emitter Emitter) *Service {
	return &Service{
		storage: newStorage(sctx),
		signers: signers,
		emitter: emitter,
		now:     sctx.State().Ledger(),
	}
}

// Ledger returns the ledger the service observes as now.
func (s *Service) Ledger() uint32 {
	return s.now
}

// Delegate makes delegator vote through delegate until the expiry ledger, 0 for a
// permanent delegation. The caller must be the delegator and a signer of the vault.
func (s *Service) Delegate(caller, delegator, delegate thor.Address, expiry uint32) error {
	logger.Debug("delegating", "delegator", delegator, "delegate", delegate, "expiry", expiry, "ledger", s.now)

	prev, err := s.validateDelegate(caller, delegator, delegate)
	if err != nil {
		logger.Info("delegate failed", "delegator", delegator, "delegate", delegate, "error", err)
		return err
	}

	d := &Delegation{
		Delegator:    delegator,
		Delegate:     delegate,
		ExpiryLedger: expiry,
		Status:       StatusActive,
		CreatedAt:    s.now,
	}
	if err := s.storage.setDelegation(d, prev.IsEmpty()); err != nil {
		return err
	}
	if err := s.storage.appendHistory(delegator, HistoryEntry{
		Event:    EventCreated,
		Delegate: delegate,
		AtLedger: s.now,
	}, false); err != nil {
		return err
	}
	if err := s.storage.addInbound(delegate, delegator); err != nil {
		return err
	}
	if err := s.emit(DelegationCreatedEvent, delegator, delegate, &EventData{AtLedger: s.now, ExpiryLedger: expiry}); err != nil {
		return err
	}

	metricOps().AddWithLabel(1, map[string]string{"op": "created"})
	logger.Info("delegated", "delegator", delegator, "delegate", delegate)
	return nil
}

// validateDelegate checks the preconditions of Delegate, the first failure wins.
// It returns the reconciled record currently stored for delegator.
func (s *Service) validateDelegate(caller, delegator, delegate thor.Address) (*Delegation, error) {
	if caller != delegator {
		return nil, ErrUnauthorized
	}
	ok, err := s.signers.IsSigner(delegator)
	if err != nil {
		return nil, errors.Wrap(err, "failed to check signer")
	}
	if !ok {
		return nil, ErrUnauthorized
	}
	if delegator == delegate {
		return nil, ErrUnauthorized
	}

	current, _, err := s.Reconcile(delegator)
	if err != nil {
		return nil, err
	}
	if current.IsActive(s.now) {
		return nil, ErrAlreadyExists
	}

	// try the proposed edge: walk forward from delegate as if delegator pointed to it
	ahead, err := s.walk(delegate, delegator)
	if err != nil {
		return nil, err
	}
	if ahead.fault == faultCycle {
		if ahead.next != delegator {
			s.reportFault("delegate", ahead)
		}
		return nil, ErrCircularDelegation
	}
	downstream := ahead.hops()
	if ahead.fault == faultDepth {
		downstream = MaxChainDepth + 1
	}

	upstream, err := s.inboundDepth(delegator)
	if err != nil {
		return nil, err
	}
	if upstream+1+downstream > MaxChainDepth {
		return nil, ErrDelegationChainTooLong
	}
	return current, nil
}

// Revoke ends the active delegation of delegator.
func (s *Service) Revoke(caller, delegator thor.Address) error {
	logger.Debug("revoking", "delegator", delegator, "ledger", s.now)

	if caller != delegator {
		logger.Info("revoke failed", "delegator", delegator, "error", ErrUnauthorized)
		return ErrUnauthorized
	}
	d, _, err := s.Reconcile(delegator)
	if err != nil {
		return err
	}
	if !d.IsActive(s.now) {
		logger.Info("revoke failed", "delegator", delegator, "error", ErrNotFound)
		return ErrNotFound
	}

	d.Status = StatusRevoked
	if err := s.storage.setDelegation(d, false); err != nil {
		return err
	}
	if err := s.storage.appendHistory(delegator, HistoryEntry{
		Event:    EventRevoked,
		Delegate: d.Delegate,
		AtLedger: s.now,
	}, true); err != nil {
		return err
	}
	if err := s.storage.removeInbound(d.Delegate, delegator); err != nil {
		return err
	}
	if err := s.emit(DelegationRevokedEvent, delegator, d.Delegate, &EventData{AtLedger: s.now, ExpiryLedger: d.ExpiryLedger}); err != nil {
		return err
	}

	metricOps().AddWithLabel(1, map[string]string{"op": "revoked"})
	logger.Info("revoked delegation", "delegator", delegator, "delegate", d.Delegate)
	return nil
}

// RecordDelegatedVote notes that the voting power of voter was exercised by the
// effective voter on a proposal.
func (s *Service) RecordDelegatedVote(voter, effective thor.Address, proposalID uint64) error {
	if err := s.storage.appendHistory(voter, HistoryEntry{
		Event:      EventVoteDelegated,
		Delegate:   effective,
		AtLedger:   s.now,
		ProposalID: proposalID,
	}, false); err != nil {
		return err
	}
	if err := s.emit(DelegatedVoteEvent, voter, effective, &EventData{AtLedger: s.now, ProposalID: proposalID}); err != nil {
		return err
	}
	metricOps().AddWithLabel(1, map[string]string{"op": "delegated_vote"})
	return nil
}

// expire records the lapse of an active delegation observed past its expiry.
func (s *Service) expire(d *Delegation) error {
	d.Status = StatusExpired
	if err := s.storage.setDelegation(d, false); err != nil {
		return err
	}
	if err := s.storage.appendHistory(d.Delegator, HistoryEntry{
		Event:    EventExpired,
		Delegate: d.Delegate,
		AtLedger: s.now,
	}, true); err != nil {
		return err
	}
	if err := s.storage.removeInbound(d.Delegate, d.Delegator); err != nil {
		return err
	}
	if err := s.emit(DelegationExpiredEvent, d.Delegator, d.Delegate, &EventData{AtLedger: s.now, ExpiryLedger: d.ExpiryLedger}); err != nil {
		return err
	}

	metricOps().AddWithLabel(1, map[string]string{"op": "expired"})
	logger.Debug("delegation expired", "delegator", d.Delegator, "delegate", d.Delegate, "expiry", d.ExpiryLedger)
	return nil
}

// inboundDepth returns the length of the longest active chain ending at addr,
// capped at MaxChainDepth+1. Stale inbound entries are pruned on the way.
func (s *Service) inboundDepth(addr thor.Address) (int, error) {
	visited := map[thor.Address]struct{}{addr: {}}
	level := []thor.Address{addr}
	depth := 0
	for len(level) > 0 && depth <= MaxChainDepth {
		var next []thor.Address
		for _, target := range level {
			delegators, err := s.liveInbound(target)
			if err != nil {
				return 0, err
			}
			for _, d := range delegators {
				if _, ok := visited[d]; ok {
					continue
				}
				visited[d] = struct{}{}
				next = append(next, d)
			}
		}
		if len(next) == 0 {
			break
		}
		depth++
		level = next
	}
	return depth, nil
}

// liveInbound returns the delegators actively pointing to target.
func (s *Service) liveInbound(target thor.Address) ([]thor.Address, error) {
	list, err := s.storage.getInbound(target)
	if err != nil {
		return nil, err
	}
	live := make([]thor.Address, 0, len(list))
	for _, delegator := range list {
		d, _, err := s.Reconcile(delegator)
		if err != nil {
			return nil, err
		}
		if d.IsActive(s.now) && d.Delegate == target {
			live = append(live, delegator)
		}
	}
	if len(live) != len(list) {
		// reconcile may have pruned already, read again before rewriting
		current, err := s.storage.getInbound(target)
		if err != nil {
			return nil, err
		}
		if len(current) != len(live) {
			if err := s.storage.setInbound(target, live, false); err != nil {
				return nil, err
			}
		}
	}
	return live, nil
}

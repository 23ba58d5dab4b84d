// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package delegation

import (
	"github.com/pkg/errors"

	"github.com/vechain/thor-vault/builtin/solidity"
	"github.com/vechain/thor-vault/thor"
)

var (
	slotDelegations = thor.NameToSlot("delegation")
	slotHistory     = thor.NameToSlot("delegation_history")
	slotInbound     = thor.NameToSlot("delegation_inbound")
)

// storage keeps delegation records, histories and the inbound index of a contract.
// Every write extends the entry lifetime by thor.DelegationTTL, reads bump it when
// the remaining lifetime drops below thor.DelegationTTLThreshold. Entries that
// outlived their lifetime are archived, not lost, and the bump restores them.
type storage struct {
	ledger      uint32
	delegations *solidity.Mapping[thor.Address, *Delegation]
	history     *solidity.Mapping[thor.Address, History]
	inbound     *solidity.Mapping[thor.Address, []thor.Address]
}

func newStorage(sctx *solidity.Context) *storage {
	return &storage{
		ledger:      sctx.State().Ledger(),
		delegations: solidity.NewMapping[thor.Address, *Delegation](sctx, slotDelegations),
		history:     solidity.NewMapping[thor.Address, History](sctx, slotHistory),
		inbound:     solidity.NewMapping[thor.Address, []thor.Address](sctx, slotInbound),
	}
}

func bump[V any](m *solidity.Mapping[thor.Address, V], key thor.Address, ledger uint32) error {
	liveUntil, err := m.TTL(key)
	if err != nil {
		return err
	}
	if liveUntil == 0 || (liveUntil >= ledger && liveUntil-ledger >= thor.DelegationTTLThreshold) {
		return nil
	}
	return m.ExtendTTL(key, thor.DelegationTTL)
}

func (s *storage) getDelegation(delegator thor.Address) (*Delegation, error) {
	d, err := s.delegations.Get(delegator)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get delegation")
	}
	if d.IsEmpty() {
		return d, nil
	}
	if err := bump(s.delegations, delegator, s.ledger); err != nil {
		return nil, errors.Wrap(err, "failed to bump delegation ttl")
	}
	return d, nil
}

func (s *storage) setDelegation(d *Delegation, newValue bool) error {
	if err := s.delegations.Set(d.Delegator, d, newValue); err != nil {
		return errors.Wrap(err, "failed to set delegation")
	}
	if err := s.delegations.ExtendTTL(d.Delegator, thor.DelegationTTL); err != nil {
		return errors.Wrap(err, "failed to extend delegation ttl")
	}
	return nil
}

func (s *storage) getHistory(delegator thor.Address) (History, error) {
	h, err := s.history.Get(delegator)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get delegation history")
	}
	if len(h) > 0 {
		if err := bump(s.history, delegator, s.ledger); err != nil {
			return nil, errors.Wrap(err, "failed to bump delegation history ttl")
		}
	}
	return h, nil
}

// appendHistory appends the entry. When closeOpen is set, the open Created entry is
// closed at the entry ledger first.
func (s *storage) appendHistory(delegator thor.Address, entry HistoryEntry, closeOpen bool) error {
	h, err := s.getHistory(delegator)
	if err != nil {
		return err
	}
	newValue := len(h) == 0
	if closeOpen {
		if i := h.openIndex(); i >= 0 {
			h[i].close(entry.AtLedger)
		}
	}
	h = append(h, entry)
	if err := s.history.Set(delegator, h, newValue); err != nil {
		return errors.Wrap(err, "failed to set delegation history")
	}
	if err := s.history.ExtendTTL(delegator, thor.DelegationTTL); err != nil {
		return errors.Wrap(err, "failed to extend delegation history ttl")
	}
	return nil
}

func (s *storage) getInbound(delegate thor.Address) ([]thor.Address, error) {
	list, err := s.inbound.Get(delegate)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get inbound delegators")
	}
	return list, nil
}

func (s *storage) setInbound(delegate thor.Address, list []thor.Address, newValue bool) error {
	if len(list) == 0 {
		if newValue {
			return nil
		}
		if err := s.inbound.Delete(delegate); err != nil {
			return errors.Wrap(err, "failed to delete inbound delegators")
		}
		return nil
	}
	if err := s.inbound.Set(delegate, list, newValue); err != nil {
		return errors.Wrap(err, "failed to set inbound delegators")
	}
	if err := s.inbound.ExtendTTL(delegate, thor.DelegationTTL); err != nil {
		return errors.Wrap(err, "failed to extend inbound delegators ttl")
	}
	return nil
}

func (s *storage) addInbound(delegate, delegator thor.Address) error {
	list, err := s.getInbound(delegate)
	if err != nil {
		return err
	}
	for _, a := range list {
		if a == delegator {
			return nil
		}
	}
	return s.setInbound(delegate, append(list, delegator), len(list) == 0)
}

func (s *storage) removeInbound(delegate, delegator thor.Address) error {
	list, err := s.getInbound(delegate)
	if err != nil {
		return err
	}
	kept := list[:0]
	for _, a := range list {
		if a != delegator {
			kept = append(kept, a)
		}
	}
	if len(kept) == len(list) {
		return nil
	}
	return s.setInbound(delegate, kept, false)
}

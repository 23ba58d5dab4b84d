// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package delegation

import (
	"github.com/vechain/thor-vault/thor"
)

type walkFault int

const (
	faultNone  walkFault = iota // reached an address without active delegation
	faultCycle                  // the next address was already visited
	faultDepth                  // more than MaxChainDepth hops
)

type walkResult struct {
	path  []thor.Address // visited addresses in order, the last one is where the walk stopped
	fault walkFault
	next  thor.Address // the revisited address on faultCycle
}

func (w *walkResult) root() thor.Address {
	return w.path[len(w.path)-1]
}

func (w *walkResult) hops() int {
	return len(w.path) - 1
}

// walk follows active delegations from start, expiring lapsed records on the way.
// Addresses in seen are treated as already visited.
func (s *Service) walk(start thor.Address, seen ...thor.Address) (*walkResult, error) {
	visited := make(map[thor.Address]struct{}, MaxChainDepth+1+len(seen))
	for _, a := range seen {
		visited[a] = struct{}{}
	}
	visited[start] = struct{}{}

	res := &walkResult{path: []thor.Address{start}}
	current := start
	for {
		d, _, err := s.Reconcile(current)
		if err != nil {
			return nil, err
		}
		if !d.IsActive(s.now) {
			return res, nil
		}
		next := d.Delegate
		if _, ok := visited[next]; ok {
			res.fault = faultCycle
			res.next = next
			return res, nil
		}
		if res.hops()+1 > MaxChainDepth {
			res.fault = faultDepth
			return res, nil
		}
		visited[next] = struct{}{}
		res.path = append(res.path, next)
		current = next
	}
}

func (s *Service) reportFault(op string, w *walkResult) {
	metricInvariantViolations().Add(1)
	reason := "cycle"
	if w.fault == faultDepth {
		reason = "depth"
	}
	logger.Error("delegation invariant violated", "op", op, "reason", reason, "path", w.path, "next", w.next, "ledger", s.now)
}

// EffectiveVoter returns the address at the end of the active delegation chain
// starting at voter, voter itself when it does not delegate. Lapsed delegations met
// on the way are expired. A cycle or an over-long chain found in stored state is
// reported and resolved to the last address reached.
func (s *Service) EffectiveVoter(voter thor.Address) (thor.Address, error) {
	w, err := s.walk(voter)
	if err != nil {
		return thor.Address{}, err
	}
	if w.fault != faultNone {
		s.reportFault("resolve", w)
	}
	metricResolveHops().Observe(int64(w.hops()))
	return w.root(), nil
}

// Reconcile reads the record of delegator and, when it is active but past its expiry,
// records the expiry before returning. The flag reports whether the record expired
// during this call. The empty record is returned for unknown delegators.
func (s *Service) Reconcile(delegator thor.Address) (*Delegation, bool, error) {
	d, err := s.storage.getDelegation(delegator)
	if err != nil {
		return nil, false, err
	}
	if d.IsEmpty() || d.Status != StatusActive || !d.IsExpired(s.now) {
		return d, false, nil
	}
	if err := s.expire(d); err != nil {
		return nil, false, err
	}
	return d, true, nil
}

// Delegation returns the active delegation of delegator, the empty record when it is
// absent, revoked or expired.
func (s *Service) Delegation(delegator thor.Address) (*Delegation, error) {
	d, _, err := s.Reconcile(delegator)
	if err != nil {
		return nil, err
	}
	if !d.IsActive(s.now) {
		return &Delegation{}, nil
	}
	return d, nil
}

// ActiveDelegation is like Delegation but fails with ErrExpired for a lapsed
// delegation and ErrNotFound otherwise.
func (s *Service) ActiveDelegation(delegator thor.Address) (*Delegation, error) {
	d, _, err := s.Reconcile(delegator)
	if err != nil {
		return nil, err
	}
	if d.IsActive(s.now) {
		return d, nil
	}
	if d.IsExpired(s.now) {
		return nil, ErrExpired
	}
	return nil, ErrNotFound
}

// History returns every history entry of delegator in append order.
func (s *Service) History(delegator thor.Address) (History, error) {
	return s.storage.getHistory(delegator)
}

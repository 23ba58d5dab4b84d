// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package vault

import (
	"github.com/pkg/errors"

	"github.com/vechain/thor-vault/thor"
)

// credit attributes a vote to the effective voter only, addresses passed through on
// the delegation chain get nothing.
func (v *Vault) credit(effective thor.Address, delegated bool) error {
	r, err := v.reputation.Get(effective)
	if err != nil {
		return errors.Wrap(err, "failed to get reputation")
	}
	newValue := r.Votes == 0
	r.Votes++
	if delegated {
		r.Delegated++
	}
	r.LastLedger = v.now
	if err := v.reputation.Set(effective, r, newValue); err != nil {
		return errors.Wrap(err, "failed to set reputation")
	}
	if err := v.reputation.ExtendTTL(effective, thor.DelegationTTL); err != nil {
		return errors.Wrap(err, "failed to extend reputation ttl")
	}
	return nil
}

// Reputation returns the participation record of addr.
func (v *Vault) Reputation(addr thor.Address) (*Reputation, error) {
	r, err := v.reputation.Get(addr)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get reputation")
	}
	return r, nil
}

// MostActive returns the signer with the most recorded votes, ties go to the signer
// listed first. The zero address is returned when nobody voted.
func (v *Vault) MostActive() (thor.Address, *Reputation, error) {
	cfg, err := v.getConfig()
	if err != nil {
		return thor.Address{}, nil, err
	}
	var (
		best     thor.Address
		bestRepu = &Reputation{}
	)
	for _, s := range cfg.Signers {
		r, err := v.Reputation(s)
		if err != nil {
			return thor.Address{}, nil, err
		}
		if r.Votes > bestRepu.Votes {
			best, bestRepu = s, r
		}
	}
	return best, bestRepu, nil
}

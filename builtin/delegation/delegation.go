// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package delegation

import (
	"github.com/vechain/thor-vault/thor"
)

// MaxChainDepth is the maximum number of hops of a delegation chain.
const MaxChainDepth = 3

type Status = uint8

const (
	StatusUnknown = Status(iota) // 0 -> default value, no record
	StatusActive                 // delegating
	StatusRevoked                // revoked by the delegator
	StatusExpired                // expiry ledger observed in the past
)

// Delegation is the record of a delegator giving up its voting power.
type Delegation struct {
	Delegator    thor.Address
	Delegate     thor.Address
	ExpiryLedger uint32 // 0 for permanent delegations
	Status       Status
	CreatedAt    uint32
}

// IsEmpty returns whether the entry can be treated as empty.
func (d *Delegation) IsEmpty() bool {
	return d == nil || d.Status == StatusUnknown
}

// IsPermanent returns whether the delegation never expires.
func (d *Delegation) IsPermanent() bool {
	return !d.IsEmpty() && d.ExpiryLedger == 0
}

// IsActive returns whether the delegation is effective at ledger now.
func (d *Delegation) IsActive(now uint32) bool {
	if d.IsEmpty() || d.Status != StatusActive {
		return false
	}
	return d.ExpiryLedger == 0 || d.ExpiryLedger > now
}

// IsExpired returns whether the delegation has expired at ledger now, either
// already recorded or not observed yet.
func (d *Delegation) IsExpired(now uint32) bool {
	if d.IsEmpty() {
		return false
	}
	switch d.Status {
	case StatusExpired:
		return true
	case StatusActive:
		return d.ExpiryLedger != 0 && d.ExpiryLedger <= now
	default:
		return false
	}
}

// StatusName returns the display name of a status.
func StatusName(s Status) string {
	switch s {
	case StatusActive:
		return "active"
	case StatusRevoked:
		return "revoked"
	case StatusExpired:
		return "expired"
	default:
		return "unknown"
	}
}

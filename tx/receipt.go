// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package tx

import (
	"github.com/vechain/thor-vault/thor"
)

// Receipt represents the results of a contract invocation.
type Receipt struct {
	// ledger the invocation was applied at
	Ledger uint32
	// the authenticated caller
	Caller thor.Address
	// gas used by the invocation
	GasUsed uint64
	// if the invocation was reverted, no state change and events are kept
	Reverted bool
	// revert reason, empty if not reverted
	RevertReason string
	// events produced
	Events Events
}

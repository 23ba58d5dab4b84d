// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package thor

// Gas prices of storage operations, same as ethereum.
const (
	SloadGas       uint64 = 200
	SstoreSetGas   uint64 = 20000
	SstoreResetGas uint64 = 5000

	// InvocationGasLimit default gas limit for a single contract invocation.
	InvocationGasLimit uint64 = 10 * 1000 * 1000
)

// Ledger and storage lifetime params.
const (
	LedgerInterval uint64 = 5 // seconds between two consecutive ledgers.

	// MinPersistentTTL is the lifetime granted to a newly written storage entry.
	MinPersistentTTL uint32 = 17280 // 1 day

	// DelegationTTL is how far delegation entries are extended on write.
	DelegationTTL uint32 = 17280 * 30
	// DelegationTTLThreshold triggers a bump on read when the remaining lifetime is below it.
	DelegationTTLThreshold uint32 = 17280 * 7
)

// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package vault

import "github.com/vechain/thor-vault/metrics"

var (
	metricProposals = metrics.LazyLoadCounter("vault_proposals_count")
	metricVotes     = metrics.LazyLoadCounterVec("vault_votes_count", []string{"vote", "delegated"})
)

// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package delegation

import "github.com/vechain/thor-vault/metrics"

var (
	metricOps                 = metrics.LazyLoadCounterVec("delegation_ops_count", []string{"op"})
	metricResolveHops         = metrics.LazyLoadHistogram("delegation_resolve_hops", metrics.BucketHops)
	metricInvariantViolations = metrics.LazyLoadCounter("delegation_invariant_violations_count")
)

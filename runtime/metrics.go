// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package runtime

import "github.com/vechain/thor-vault/metrics"

var (
	metricInvocations = metrics.LazyLoadCounterVec("runtime_invocations_count", []string{"status"})
	metricGasUsed     = metrics.LazyLoadHistogram("runtime_gas_used", metrics.BucketGas)

	metricEventLogFailures = metrics.LazyLoadCounter("runtime_event_log_failures_count")
)

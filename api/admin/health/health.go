// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package health

import (
	"context"
	"time"

	"github.com/vechain/thor-vault/runtime"
)

type Status struct {
	Healthy    bool       `json:"healthy"`
	Head       uint32     `json:"head"`
	LogsLedger *uint32    `json:"logsLedger"`
	LogMisses  uint64     `json:"logMisses"`
	LastCommit *time.Time `json:"lastCommit"`
}

type Health struct {
	rt *runtime.Runtime
}

func New(rt *runtime.Runtime) *Health {
	return &Health{rt: rt}
}

// Status reports the vault healthy when the event log is readable, not ahead of the
// head and holds the events of every commit and, with maxIdle set, an invocation was
// committed within maxIdle.
func (h *Health) Status(ctx context.Context, maxIdle time.Duration) (*Status, error) {
	status := &Status{Head: h.rt.Head(), LogMisses: h.rt.EventLogFailures()}
	if last := h.rt.LastCommit(); !last.IsZero() {
		status.LastCommit = &last
	}

	logsInSync := status.LogMisses == 0
	if logDB := h.rt.LogDB(); logDB != nil {
		// ledgers without events are not logged
		if newest, err := logDB.NewestLedger(); err != nil {
			logsInSync = false
		} else {
			status.LogsLedger = &newest
			logsInSync = logsInSync && newest <= status.Head
		}
	}

	fresh := true
	if maxIdle > 0 {
		fresh = status.LastCommit != nil && time.Since(*status.LastCommit) <= maxIdle
	}
	status.Healthy = logsInSync && fresh && ctx.Err() == nil
	return status, nil
}

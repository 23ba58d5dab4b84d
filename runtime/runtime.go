// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package runtime

import (
	"encoding/binary"
	"sync"
	"time"

	"github.com/pkg/errors"

	"github.com/vechain/thor-vault/builtin/reverts"
	"github.com/vechain/thor-vault/kv"
	"github.com/vechain/thor-vault/log"
	"github.com/vechain/thor-vault/logdb"
	"github.com/vechain/thor-vault/state"
	"github.com/vechain/thor-vault/thor"
	"github.com/vechain/thor-vault/tx"
	"github.com/vechain/thor-vault/xenv"
)

var (
	logger = log.WithContext("pkg", "runtime")

	// ErrStaleLedger is returned when an invocation targets a ledger lower than the head.
	ErrStaleLedger = errors.New("ledger is behind the head")

	headBucket = kv.Bucket("h")
	headKey    = []byte("head")
)

// Invocation is the body of a contract call, run against the env of the call.
type Invocation func(env *xenv.Environment) error

// Runtime applies contract invocations one at a time. An invocation either commits
// all of its state changes and events, or none of them.
type Runtime struct {
	mu         sync.Mutex
	stater     *state.Stater
	heads      kv.Store
	logDB      *logdb.LogDB
	contract   thor.Address
	head       uint32
	lastCommit time.Time
	logMisses  uint64
}

// New create a Runtime object. logDB is optional.
func New(db kv.Store, logDB *logdb.LogDB, contract thor.Address, cacheSize int) (*Runtime, error) {
	rt := &Runtime{
		stater:   state.NewStater(db, cacheSize),
		heads:    headBucket.NewStore(db),
		logDB:    logDB,
		contract: contract,
	}
	data, err := rt.heads.Get(headKey)
	if err != nil {
		if !rt.heads.IsNotFound(err) {
			return nil, errors.Wrap(err, "failed to load head")
		}
	} else {
		rt.head = binary.BigEndian.Uint32(data)
	}
	return rt, nil
}

// Head returns the highest ledger an invocation was applied at.
func (rt *Runtime) Head() uint32 {
	rt.mu.Lock()
	defer rt.mu.Unlock()
	return rt.head
}

// LastCommit returns when an invocation was last committed, zero if none since New.
func (rt *Runtime) LastCommit() time.Time {
	rt.mu.Lock()
	defer rt.mu.Unlock()
	return rt.lastCommit
}

// EventLogFailures returns how many committed invocations failed to reach the event
// log since New.
func (rt *Runtime) EventLogFailures() uint64 {
	rt.mu.Lock()
	defer rt.mu.Unlock()
	return rt.logMisses
}

func (rt *Runtime) Contract() thor.Address { return rt.contract }
func (rt *Runtime) LogDB() *logdb.LogDB    { return rt.logDB }

// Execute runs fn as the caller at the ledger of blockCtx and moves the head up to
// that ledger. Business reverts and out-of-gas drop every change of the invocation
// and are returned together with a reverted receipt. Other errors are returned
// without receipt.
func (rt *Runtime) Execute(blockCtx *xenv.BlockContext, caller thor.Address, gasLimit uint64, fn Invocation) (*tx.Receipt, error) {
	rt.mu.Lock()
	defer rt.mu.Unlock()

	if blockCtx.Number < rt.head {
		return nil, errors.WithMessagef(ErrStaleLedger, "ledger %d, head %d", blockCtx.Number, rt.head)
	}
	return rt.execute(blockCtx, caller, gasLimit, fn, commitAdvance)
}

// Call runs fn anonymously at ledger without moving the head. At the head, state
// changes of fn (lazy expiries) are committed. Above the head, fn runs against a
// preview of that ledger and nothing is committed.
func (rt *Runtime) Call(ledger uint32, gasLimit uint64, fn Invocation) (*tx.Receipt, error) {
	rt.mu.Lock()
	defer rt.mu.Unlock()

	mode := commitInPlace
	switch {
	case ledger < rt.head:
		return nil, errors.WithMessagef(ErrStaleLedger, "ledger %d, head %d", ledger, rt.head)
	case ledger > rt.head:
		mode = commitNone
	}
	return rt.execute(&xenv.BlockContext{Number: ledger}, thor.Address{}, gasLimit, fn, mode)
}

type commitMode int

const (
	commitAdvance commitMode = iota
	commitInPlace
	commitNone
)

func (rt *Runtime) execute(blockCtx *xenv.BlockContext, caller thor.Address, gasLimit uint64, fn Invocation, mode commitMode) (*tx.Receipt, error) {
	st := rt.stater.NewState(blockCtx.Number)
	env := xenv.New(rt.contract, st, blockCtx, caller, gasLimit)
	checkpoint := st.NewCheckpoint()

	err := run(env, fn)
	receipt := &tx.Receipt{
		Ledger:  blockCtx.Number,
		Caller:  caller,
		GasUsed: env.GasUsed(),
	}
	metricGasUsed().Observe(int64(receipt.GasUsed))

	if err != nil {
		if !reverts.IsRevertErr(err) && !errors.Is(err, xenv.ErrOutOfGas) {
			metricInvocations().AddWithLabel(1, map[string]string{"status": "failed"})
			logger.Warn("invocation failed", "caller", caller, "ledger", blockCtx.Number, "error", err)
			return nil, err
		}
		st.RevertTo(checkpoint)
		receipt.Reverted = true
		receipt.RevertReason = err.Error()
		metricInvocations().AddWithLabel(1, map[string]string{"status": "reverted"})
		logger.Debug("invocation reverted", "caller", caller, "ledger", blockCtx.Number, "reason", receipt.RevertReason, "gas", receipt.GasUsed)
		return receipt, err
	}

	receipt.Events = env.Events()
	if mode == commitNone {
		metricInvocations().AddWithLabel(1, map[string]string{"status": "preview"})
		return receipt, nil
	}
	if err := rt.commit(st, receipt, mode == commitAdvance); err != nil {
		metricInvocations().AddWithLabel(1, map[string]string{"status": "failed"})
		return nil, err
	}
	metricInvocations().AddWithLabel(1, map[string]string{"status": "success"})
	logger.Debug("invocation applied", "caller", caller, "ledger", blockCtx.Number, "gas", receipt.GasUsed, "events", len(receipt.Events))
	return receipt, nil
}

func run(env *xenv.Environment, fn Invocation) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = xenv.Recover(r)
		}
	}()
	return fn(env)
}

// commit writes the state changes and the new head in one batch. The event log is
// an index of committed invocations, a failure to write it does not undo them.
func (rt *Runtime) commit(st *state.State, receipt *tx.Receipt, advance bool) error {
	advance = advance && receipt.Ledger > rt.head
	var extra []func(kv.Putter) error
	if advance {
		extra = append(extra, func(w kv.Putter) error {
			return headBucket.NewPutter(w).Put(headKey, binary.BigEndian.AppendUint32(nil, receipt.Ledger))
		})
	}
	if err := st.Stage().Commit(extra...); err != nil {
		return errors.Wrap(err, "failed to commit state")
	}
	if advance {
		rt.head = receipt.Ledger
	}
	rt.lastCommit = time.Now()

	if rt.logDB != nil {
		if err := rt.logDB.Write(receipt); err != nil {
			rt.logMisses++
			metricEventLogFailures().Add(1)
			logger.Error("failed to write events", "ledger", receipt.Ledger, "events", len(receipt.Events), "error", err)
		}
	}
	return nil
}

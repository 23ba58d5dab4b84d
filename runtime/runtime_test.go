// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package runtime_test

import (
	"context"
	"math/big"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/thor-vault/builtin"
	"github.com/vechain/thor-vault/builtin/delegation"
	"github.com/vechain/thor-vault/builtin/vault"
	"github.com/vechain/thor-vault/logdb"
	"github.com/vechain/thor-vault/lvldb"
	"github.com/vechain/thor-vault/runtime"
	"github.com/vechain/thor-vault/test/datagen"
	"github.com/vechain/thor-vault/thor"
	"github.com/vechain/thor-vault/xenv"
)

type testRuntime struct {
	*runtime.Runtime
	db      *lvldb.LevelDB
	logDB   *logdb.LogDB
	signers []thor.Address
}

func newTestRuntime(t *testing.T) *testRuntime {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	logDB, err := logdb.NewMem()
	require.NoError(t, err)
	t.Cleanup(func() {
		logDB.Close()
		db.Close()
	})

	rt, err := runtime.New(db, logDB, builtin.Vault.Address, 64)
	require.NoError(t, err)

	signers := datagen.RandAddresses(3)
	_, err = rt.Execute(&xenv.BlockContext{Number: 1}, thor.Address{}, thor.InvocationGasLimit, func(env *xenv.Environment) error {
		return builtin.Vault.Native(env).Init(&vault.Config{Signers: signers, Threshold: 2})
	})
	require.NoError(t, err)
	return &testRuntime{Runtime: rt, db: db, logDB: logDB, signers: signers}
}

func (rt *testRuntime) delegate(ledger uint32, from, to thor.Address, expiry uint32) error {
	_, err := rt.Execute(&xenv.BlockContext{Number: ledger}, from, thor.InvocationGasLimit, func(env *xenv.Environment) error {
		return builtin.Vault.Native(env).Delegations().Delegate(env.Caller(), from, to, expiry)
	})
	return err
}

func TestExecuteCommits(t *testing.T) {
	rt := newTestRuntime(t)
	a, b := rt.signers[0], rt.signers[1]

	receipt, err := rt.Execute(&xenv.BlockContext{Number: 2}, a, thor.InvocationGasLimit, func(env *xenv.Environment) error {
		return builtin.Vault.Native(env).Delegations().Delegate(env.Caller(), a, b, 0)
	})
	require.NoError(t, err)
	assert.False(t, receipt.Reverted)
	assert.NotZero(t, receipt.GasUsed)
	assert.Len(t, receipt.Events.FilterBySymbol(delegation.DelegationCreatedEvent), 1)
	assert.Equal(t, uint32(2), rt.Head())

	events, err := rt.logDB.FilterEvents(context.Background(), nil)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, a, events[0].Caller)
	assert.Equal(t, delegation.DelegationCreatedEvent, *events[0].Topics[0])

	// committed state is visible to later invocations
	_, err = rt.Execute(&xenv.BlockContext{Number: 3}, a, thor.InvocationGasLimit, func(env *xenv.Environment) error {
		root, err := builtin.Vault.Native(env).Delegations().EffectiveVoter(a)
		if err != nil {
			return err
		}
		assert.Equal(t, b, root)
		return nil
	})
	require.NoError(t, err)
}

func TestExecuteRevert(t *testing.T) {
	rt := newTestRuntime(t)
	a, b := rt.signers[0], rt.signers[1]
	require.NoError(t, rt.delegate(2, a, b, 0))

	// the second write fails, the proposal created before it is dropped
	receipt, err := rt.Execute(&xenv.BlockContext{Number: 3}, b, thor.InvocationGasLimit, func(env *xenv.Environment) error {
		v := builtin.Vault.Native(env)
		if _, err := v.Propose(b, a, big.NewInt(1), ""); err != nil {
			return err
		}
		return v.Delegations().Delegate(env.Caller(), b, a, 0)
	})
	assert.ErrorIs(t, err, delegation.ErrCircularDelegation)
	require.NotNil(t, receipt)
	assert.True(t, receipt.Reverted)
	assert.Equal(t, delegation.ErrCircularDelegation.Error(), receipt.RevertReason)
	assert.Empty(t, receipt.Events)
	assert.Equal(t, uint32(2), rt.Head())

	_, err = rt.Execute(&xenv.BlockContext{Number: 3}, b, thor.InvocationGasLimit, func(env *xenv.Environment) error {
		_, err := builtin.Vault.Native(env).Proposal(1)
		return err
	})
	assert.ErrorIs(t, err, vault.ErrProposalNotFound)

	events, err := rt.logDB.FilterEvents(context.Background(), nil)
	require.NoError(t, err)
	assert.Len(t, events, 1)
}

func TestExecuteOutOfGas(t *testing.T) {
	rt := newTestRuntime(t)
	a, b := rt.signers[0], rt.signers[1]

	receipt, err := rt.Execute(&xenv.BlockContext{Number: 2}, a, thor.SstoreSetGas, func(env *xenv.Environment) error {
		return builtin.Vault.Native(env).Delegations().Delegate(env.Caller(), a, b, 0)
	})
	assert.ErrorIs(t, err, xenv.ErrOutOfGas)
	require.NotNil(t, receipt)
	assert.True(t, receipt.Reverted)
	assert.Equal(t, thor.SstoreSetGas, receipt.GasUsed)

	require.NoError(t, rt.delegate(2, a, b, 0))
}

func TestExecuteFault(t *testing.T) {
	rt := newTestRuntime(t)
	fault := errors.New("disk on fire")

	receipt, err := rt.Execute(&xenv.BlockContext{Number: 2}, thor.Address{}, thor.InvocationGasLimit, func(env *xenv.Environment) error {
		return fault
	})
	assert.Nil(t, receipt)
	assert.ErrorIs(t, err, fault)

	assert.Panics(t, func() {
		_, _ = rt.Execute(&xenv.BlockContext{Number: 2}, thor.Address{}, thor.InvocationGasLimit, func(env *xenv.Environment) error {
			panic("unexpected")
		})
	})
}

func TestStaleLedger(t *testing.T) {
	rt := newTestRuntime(t)
	require.NoError(t, rt.delegate(10, rt.signers[0], rt.signers[1], 0))

	err := rt.delegate(9, rt.signers[1], rt.signers[2], 0)
	assert.ErrorIs(t, err, runtime.ErrStaleLedger)
}

func TestHeadPersisted(t *testing.T) {
	rt := newTestRuntime(t)
	require.NoError(t, rt.delegate(7, rt.signers[0], rt.signers[1], 0))

	reopened, err := runtime.New(rt.db, nil, builtin.Vault.Address, 64)
	require.NoError(t, err)
	assert.Equal(t, uint32(7), reopened.Head())
	assert.Nil(t, reopened.LogDB())
	assert.Equal(t, builtin.Vault.Address, reopened.Contract())
}

func TestCallKeepsHead(t *testing.T) {
	rt := newTestRuntime(t)
	a, b := rt.signers[0], rt.signers[1]
	require.NoError(t, rt.delegate(2, a, b, 10))

	resolve := func(ledger uint32) (thor.Address, error) {
		var effective thor.Address
		_, err := rt.Call(ledger, thor.InvocationGasLimit, func(env *xenv.Environment) (err error) {
			effective, err = builtin.Vault.Native(env).Delegations().EffectiveVoter(a)
			return
		})
		return effective, err
	}

	// a preview of a future ledger observes the expiry but commits nothing
	effective, err := resolve(^uint32(0))
	require.NoError(t, err)
	assert.Equal(t, a, effective)
	assert.Equal(t, uint32(2), rt.Head())

	effective, err = resolve(2)
	require.NoError(t, err)
	assert.Equal(t, b, effective)

	_, err = resolve(1)
	assert.ErrorIs(t, err, runtime.ErrStaleLedger)

	// signers keep writing at their own pace
	require.NoError(t, rt.delegate(3, rt.signers[2], b, 0))
	assert.Equal(t, uint32(3), rt.Head())
}

func TestCallAtHeadCommitsExpiry(t *testing.T) {
	rt := newTestRuntime(t)
	a, b, c := rt.signers[0], rt.signers[1], rt.signers[2]
	require.NoError(t, rt.delegate(2, a, b, 5))
	require.NoError(t, rt.delegate(6, c, b, 0))

	_, err := rt.Call(6, thor.InvocationGasLimit, func(env *xenv.Environment) error {
		_, err := builtin.Vault.Native(env).Delegations().EffectiveVoter(a)
		return err
	})
	require.NoError(t, err)
	assert.Equal(t, uint32(6), rt.Head())

	expired, err := rt.logDB.FilterEvents(context.Background(), &logdb.EventFilter{
		CriteriaSet: []*logdb.EventCriteria{{Topics: [4]*thor.Bytes32{&delegation.DelegationExpiredEvent}}},
	})
	require.NoError(t, err)
	require.Len(t, expired, 1)
	assert.Equal(t, uint32(6), expired[0].Ledger)
}

func TestEventLogFailureKeepsInvocation(t *testing.T) {
	rt := newTestRuntime(t)
	a, b := rt.signers[0], rt.signers[1]
	require.NoError(t, rt.logDB.Close())

	receipt, err := rt.Execute(&xenv.BlockContext{Number: 2}, a, thor.InvocationGasLimit, func(env *xenv.Environment) error {
		return builtin.Vault.Native(env).Delegations().Delegate(env.Caller(), a, b, 0)
	})
	require.NoError(t, err)
	assert.Len(t, receipt.Events, 1)
	assert.Equal(t, uint32(2), rt.Head())
	assert.Equal(t, uint64(1), rt.EventLogFailures())

	reopened, err := runtime.New(rt.db, nil, builtin.Vault.Address, 64)
	require.NoError(t, err)
	assert.Equal(t, uint32(2), reopened.Head())
	_, err = reopened.Call(2, thor.InvocationGasLimit, func(env *xenv.Environment) error {
		effective, err := builtin.Vault.Native(env).Delegations().EffectiveVoter(a)
		assert.Equal(t, b, effective)
		return err
	})
	require.NoError(t, err)
}

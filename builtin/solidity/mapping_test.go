// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package solidity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/thor-vault/builtin/gascharger"
	"github.com/vechain/thor-vault/lvldb"
	"github.com/vechain/thor-vault/state"
	"github.com/vechain/thor-vault/test/datagen"
	"github.com/vechain/thor-vault/thor"
)

type TestStruct struct {
	Field1 uint64
	Field2 uint64
	Addr1  thor.Address
	Bytes1 thor.Bytes32
}

// BigStruct spans multiple words: 3 Bytes32 fields.
type BigStruct struct {
	A thor.Bytes32
	B thor.Bytes32
	C thor.Bytes32
}

// newTestContext returns a fresh Context with in-memory DB and unlimited gas.
func newTestContext(t *testing.T) *Context {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	st := state.NewStater(db, 16).NewState(100)
	return NewContext(thor.Address{1}, st, gascharger.New(nil))
}

func TestMappingValue(t *testing.T) {
	ctx := newTestContext(t)
	m := NewMapping[thor.Address, uint64](ctx, thor.Bytes32{1})
	key := datagen.RandAddress()

	v, err := m.Get(key)
	require.NoError(t, err)
	assert.Zero(t, v)
	assert.Zero(t, ctx.charger.TotalGas())

	require.NoError(t, m.Set(key, 42, true))
	assert.Equal(t, thor.SstoreSetGas, ctx.charger.TotalGas())

	v, err = m.Get(key)
	require.NoError(t, err)
	assert.Equal(t, uint64(42), v)
	assert.Equal(t, thor.SstoreSetGas+thor.SloadGas, ctx.charger.TotalGas())
}

func TestMappingPointer(t *testing.T) {
	ctx := newTestContext(t)
	m := NewMapping[thor.Bytes32, *TestStruct](ctx, thor.Bytes32{2})
	key := datagen.RandomHash()

	empty, err := m.Get(key)
	require.NoError(t, err)
	require.NotNil(t, empty)
	assert.Equal(t, TestStruct{}, *empty)

	val := &TestStruct{Field1: 100, Field2: 200, Addr1: datagen.RandAddress(), Bytes1: datagen.RandomHash()}
	require.NoError(t, m.Set(key, val, true))

	got, err := m.Get(key)
	require.NoError(t, err)
	assert.Equal(t, val, got)
}

func TestMappingMultiWordGas(t *testing.T) {
	ctx := newTestContext(t)
	m := NewMapping[thor.Bytes32, *BigStruct](ctx, thor.Bytes32{3})
	key := datagen.RandomHash()

	// 3 * 33 bytes plus the list header, 4 words.
	val := &BigStruct{A: datagen.RandomHash(), B: datagen.RandomHash(), C: datagen.RandomHash()}
	require.NoError(t, m.Set(key, val, true))
	assert.Equal(t, 4*thor.SstoreSetGas, ctx.charger.TotalGas())

	require.NoError(t, m.Set(key, val, false))
	assert.Equal(t, 4*thor.SstoreSetGas+4*thor.SstoreResetGas, ctx.charger.TotalGas())
}

func TestMappingDeleteAndTTL(t *testing.T) {
	ctx := newTestContext(t)
	m := NewMapping[thor.Address, uint64](ctx, thor.Bytes32{4})
	key := datagen.RandAddress()

	assert.Error(t, m.ExtendTTL(key, 10))

	require.NoError(t, m.Set(key, 1, true))
	ttl, err := m.TTL(key)
	require.NoError(t, err)
	assert.Equal(t, ctx.State().Ledger()+thor.MinPersistentTTL, ttl)

	require.NoError(t, m.ExtendTTL(key, thor.DelegationTTL))
	ttl, err = m.TTL(key)
	require.NoError(t, err)
	assert.Equal(t, ctx.State().Ledger()+thor.DelegationTTL, ttl)

	require.NoError(t, m.Delete(key))
	v, err := m.Get(key)
	require.NoError(t, err)
	assert.Zero(t, v)
	ttl, err = m.TTL(key)
	require.NoError(t, err)
	assert.Zero(t, ttl)
}

func TestMappingIsolation(t *testing.T) {
	ctx := newTestContext(t)
	a := NewMapping[thor.Address, uint64](ctx, thor.Bytes32{5})
	b := NewMapping[thor.Address, uint64](ctx, thor.Bytes32{6})
	key := datagen.RandAddress()

	require.NoError(t, a.Set(key, 1, true))
	v, err := b.Get(key)
	require.NoError(t, err)
	assert.Zero(t, v)
}

func TestRaw(t *testing.T) {
	ctx := newTestContext(t)
	r := NewRaw[[]thor.Address](ctx, thor.NameToSlot("signers"))

	v, err := r.Get()
	require.NoError(t, err)
	assert.Empty(t, v)

	signers := datagen.RandAddresses(3)
	require.NoError(t, r.Set(signers, true))
	v, err = r.Get()
	require.NoError(t, err)
	assert.Equal(t, signers, v)

	require.NoError(t, r.ExtendTTL(thor.DelegationTTL))
	ttl, err := r.TTL()
	require.NoError(t, err)
	assert.Equal(t, ctx.State().Ledger()+thor.DelegationTTL, ttl)
}

func TestToWordSize(t *testing.T) {
	assert.Equal(t, uint64(1), toWordSize(0))
	assert.Equal(t, uint64(1), toWordSize(32))
	assert.Equal(t, uint64(2), toWordSize(33))
	assert.Equal(t, uint64(4), toWordSize(100))
}

// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package xenv

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vechain/thor-vault/thor"
)

func TestUseGas(t *testing.T) {
	env := New(thor.Address{1}, nil, &BlockContext{Number: 1}, thor.Address{2}, 100)

	env.UseGas(60)
	assert.Equal(t, uint64(60), env.GasUsed())

	err := func() (err error) {
		defer func() {
			if r := recover(); r != nil {
				err = Recover(r)
			}
		}()
		env.UseGas(41)
		return nil
	}()
	assert.ErrorIs(t, err, ErrOutOfGas)
	assert.Equal(t, uint64(100), env.GasUsed())
}

func TestRecoverRepanics(t *testing.T) {
	assert.PanicsWithValue(t, "boom", func() {
		defer func() {
			Recover(recover())
		}()
		panic("boom")
	})
}

func TestEmit(t *testing.T) {
	contract := thor.Address{1}
	env := New(contract, nil, &BlockContext{}, thor.Address{}, 0)

	topic := thor.NameToSlot("topic")
	env.Emit([]thor.Bytes32{topic}, []byte{1})

	assert.Len(t, env.Events(), 1)
	assert.Equal(t, contract, env.Events()[0].Address)
	assert.Equal(t, topic, env.Events()[0].Symbol())
}

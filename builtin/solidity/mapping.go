// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package solidity

import (
	"reflect"

	"github.com/ethereum/go-ethereum/rlp"

	"github.com/vechain/thor-vault/thor"
)

type Key interface {
	Bytes() []byte
}

// Mapping is a key/value storage abstraction for built-in contracts, similar to the mapping in Solidity.
// Values are rlp encoded, gas is charged per 32 bytes word.
type Mapping[K Key, V any] struct {
	context *Context
	basePos thor.Bytes32
}

func NewMapping[K Key, V any](context *Context, pos thor.Bytes32) *Mapping[K, V] {
	return &Mapping[K, V]{context: context, basePos: pos}
}

func (m *Mapping[K, V]) position(key K) thor.Bytes32 {
	return thor.Blake2b(key.Bytes(), m.basePos.Bytes())
}

// Get returns the value stored under key. Absent entries decode to the zero value,
// pointer values are allocated.
func (m *Mapping[K, V]) Get(key K) (value V, err error) {
	err = m.context.state.DecodeStorage(m.context.address, m.position(key), func(raw []byte) error {
		if reflect.ValueOf(value).Kind() == reflect.Ptr {
			value = reflect.New(reflect.TypeOf(value).Elem()).Interface().(V)
		}
		if len(raw) == 0 {
			return nil
		}
		m.context.UseGas(toWordSize(len(raw)) * thor.SloadGas)
		return rlp.DecodeBytes(raw, &value)
	})
	return
}

func (m *Mapping[K, V]) Set(key K, value V, newValue bool) error {
	return m.context.state.EncodeStorage(m.context.address, m.position(key), func() ([]byte, error) {
		val, err := rlp.EncodeToBytes(value)
		if err != nil {
			return nil, err
		}
		if newValue {
			m.context.UseGas(toWordSize(len(val)) * thor.SstoreSetGas)
		} else {
			m.context.UseGas(toWordSize(len(val)) * thor.SstoreResetGas)
		}
		return val, nil
	})
}

// Delete clears the entry under key.
func (m *Mapping[K, V]) Delete(key K) error {
	m.context.UseGas(thor.SstoreResetGas)
	return m.context.state.SetRawStorage(m.context.address, m.position(key), nil)
}

// ExtendTTL makes the entry under key live for at least ledgers more ledgers.
func (m *Mapping[K, V]) ExtendTTL(key K, ledgers uint32) error {
	m.context.UseGas(thor.SloadGas)
	return m.context.state.ExtendStorageTTL(m.context.address, m.position(key), ledgers)
}

// TTL returns the live-until ledger of the entry under key, 0 when absent.
func (m *Mapping[K, V]) TTL(key K) (uint32, error) {
	return m.context.state.StorageTTL(m.context.address, m.position(key))
}

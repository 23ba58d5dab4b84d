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

// Raw is a single rlp encoded value stored at a fixed position.
type Raw[V any] struct {
	context *Context
	pos     thor.Bytes32
}

func NewRaw[V any](context *Context, pos thor.Bytes32) *Raw[V] {
	return &Raw[V]{context: context, pos: pos}
}

func (r *Raw[V]) Get() (value V, err error) {
	err = r.context.state.DecodeStorage(r.context.address, r.pos, func(raw []byte) error {
		if reflect.ValueOf(value).Kind() == reflect.Ptr {
			value = reflect.New(reflect.TypeOf(value).Elem()).Interface().(V)
		}
		if len(raw) == 0 {
			return nil
		}
		r.context.UseGas(toWordSize(len(raw)) * thor.SloadGas)
		return rlp.DecodeBytes(raw, &value)
	})
	return
}

func (r *Raw[V]) Set(value V, newValue bool) error {
	return r.context.state.EncodeStorage(r.context.address, r.pos, func() ([]byte, error) {
		val, err := rlp.EncodeToBytes(value)
		if err != nil {
			return nil, err
		}
		if newValue {
			r.context.UseGas(toWordSize(len(val)) * thor.SstoreSetGas)
		} else {
			r.context.UseGas(toWordSize(len(val)) * thor.SstoreResetGas)
		}
		return val, nil
	})
}

// ExtendTTL makes the value live for at least ledgers more ledgers.
func (r *Raw[V]) ExtendTTL(ledgers uint32) error {
	r.context.UseGas(thor.SloadGas)
	return r.context.state.ExtendStorageTTL(r.context.address, r.pos, ledgers)
}

// TTL returns the live-until ledger of the value, 0 when absent.
func (r *Raw[V]) TTL() (uint32, error) {
	return r.context.state.StorageTTL(r.context.address, r.pos)
}

// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package xenv

import (
	"github.com/pkg/errors"

	"github.com/vechain/thor-vault/state"
	"github.com/vechain/thor-vault/thor"
	"github.com/vechain/thor-vault/tx"
)

// ErrOutOfGas is raised when an invocation exhausts its gas limit.
var ErrOutOfGas = errors.New("out of gas")

// BlockContext block context.
type BlockContext struct {
	Number uint32 // the ledger height, the notion of "now"
	Time   uint64
}

type vmError struct {
	cause error
}

// Environment an env to execute native method.
type Environment struct {
	contract thor.Address
	state    *state.State
	blockCtx *BlockContext
	caller   thor.Address
	gasLimit uint64
	gasUsed  uint64
	events   tx.Events
}

// New create a new env.
func New(
	contract thor.Address,
	state *state.State,
	blockCtx *BlockContext,
	caller thor.Address,
	gasLimit uint64,
) *Environment {
	return &Environment{
		contract: contract,
		state:    state,
		blockCtx: blockCtx,
		caller:   caller,
		gasLimit: gasLimit,
	}
}

func (env *Environment) Contract() thor.Address      { return env.contract }
func (env *Environment) State() *state.State         { return env.state }
func (env *Environment) BlockContext() *BlockContext { return env.blockCtx }
func (env *Environment) Caller() thor.Address        { return env.caller }
func (env *Environment) GasUsed() uint64             { return env.gasUsed }
func (env *Environment) Events() tx.Events           { return env.events }

// UseGas consumes gas, it panics when the gas limit is exceeded.
// The panic is expected to be recovered by the invocation runtime, see Recover.
func (env *Environment) UseGas(gas uint64) {
	if gas > env.gasLimit-env.gasUsed {
		env.gasUsed = env.gasLimit
		panic(&vmError{ErrOutOfGas})
	}
	env.gasUsed += gas
}

// Emit records an event produced by the contract.
func (env *Environment) Emit(topics []thor.Bytes32, data []byte) {
	env.events = append(env.events, &tx.Event{
		Address: env.contract,
		Topics:  topics,
		Data:    data,
	})
}

// Recover converts a value recovered from a panic raised by the env back into an error.
// Other panics are re-raised.
func Recover(r any) error {
	if e, ok := r.(*vmError); ok {
		return e.cause
	}
	panic(r)
}

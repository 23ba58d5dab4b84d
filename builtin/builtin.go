// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package builtin

import (
	"github.com/vechain/thor-vault/builtin/gascharger"
	"github.com/vechain/thor-vault/builtin/vault"
	"github.com/vechain/thor-vault/state"
	"github.com/vechain/thor-vault/xenv"
)

// Builtin contracts binding.
var (
	Vault = &vaultContract{newContract("Vault")}
)

type vaultContract struct{ *contract }

// WithState binds the vault to the state, gas is not metered.
func (v *vaultContract) WithState(state *state.State) *vault.Vault {
	return vault.New(v.Address, state, nil, nil)
}

// Native binds the vault to an invocation env, charging gas and emitting events through it.
func (v *vaultContract) Native(env *xenv.Environment) *vault.Vault {
	return vault.New(v.Address, env.State(), gascharger.New(env), env)
}

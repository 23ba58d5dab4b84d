// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package genesis

import (
	"bytes"
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/vechain/thor-vault/builtin"
	"github.com/vechain/thor-vault/builtin/vault"
	"github.com/vechain/thor-vault/log"
	"github.com/vechain/thor-vault/runtime"
	"github.com/vechain/thor-vault/thor"
	"github.com/vechain/thor-vault/xenv"
)

var logger = log.WithContext("pkg", "genesis")

// Genesis is the initial setup of a vault.
type Genesis struct {
	Ledger      uint32         `yaml:"ledger"`
	Signers     []thor.Address `yaml:"signers"`
	Threshold   uint32         `yaml:"threshold"`
	Delegations []Delegation   `yaml:"delegations,omitempty"`
}

// Delegation is a delegation set up at genesis. Expiry 0 means permanent.
type Delegation struct {
	Delegator thor.Address `yaml:"delegator"`
	Delegate  thor.Address `yaml:"delegate"`
	Expiry    uint32       `yaml:"expiry,omitempty"`
}

// Load reads a genesis file in yaml.
func Load(path string) (*Genesis, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read genesis file")
	}
	return Parse(data)
}

// Parse decodes a yaml genesis. Unknown fields are rejected.
func Parse(data []byte) (*Genesis, error) {
	var gen Genesis
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&gen); err != nil {
		return nil, errors.Wrap(err, "decode genesis")
	}
	if len(gen.Signers) == 0 {
		return nil, errors.New("genesis: no signers")
	}
	return &gen, nil
}

// Marshal encodes the genesis in yaml.
func (g *Genesis) Marshal() ([]byte, error) {
	return yaml.Marshal(g)
}

// Build applies the genesis to an empty runtime in a single invocation.
func (g *Genesis) Build(rt *runtime.Runtime) error {
	if rt.Head() > 0 {
		return errors.Errorf("genesis: runtime already at ledger %d", rt.Head())
	}
	blockCtx := &xenv.BlockContext{Number: g.Ledger}
	_, err := rt.Execute(blockCtx, thor.Address{}, thor.InvocationGasLimit, func(env *xenv.Environment) error {
		v := builtin.Vault.Native(env)
		if err := v.Init(&vault.Config{Signers: g.Signers, Threshold: g.Threshold}); err != nil {
			return err
		}
		for _, d := range g.Delegations {
			if err := v.Delegations().Delegate(d.Delegator, d.Delegator, d.Delegate, d.Expiry); err != nil {
				return errors.WithMessagef(err, "genesis delegation %v -> %v", d.Delegator, d.Delegate)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	logger.Info("genesis applied", "ledger", g.Ledger, "signers", len(g.Signers), "threshold", g.Threshold, "delegations", len(g.Delegations))
	return nil
}

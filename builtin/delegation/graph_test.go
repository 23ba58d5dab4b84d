// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package delegation

import (
	"testing"

	fuzz "github.com/google/gofuzz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/thor-vault/builtin/reverts"
	"github.com/vechain/thor-vault/test/datagen"
	"github.com/vechain/thor-vault/thor"
)

type graphOp struct {
	From, To uint8
	Revoke   bool
	Expiry   uint8
	Gap      uint8
}

// activeChain follows active records from addr without reconciling them.
func activeChain(t *testing.T, svc *Service, addr thor.Address) []thor.Address {
	path := []thor.Address{addr}
	for len(path) <= 2*MaxChainDepth {
		d, err := svc.storage.getDelegation(path[len(path)-1])
		require.NoError(t, err)
		if !d.IsActive(svc.Ledger()) {
			break
		}
		path = append(path, d.Delegate)
	}
	return path
}

func TestRandomDelegationGraph(t *testing.T) {
	for seed := int64(1); seed <= 20; seed++ {
		var ops []graphOp
		fuzz.NewWithSeed(seed).NilChance(0).NumElements(40, 80).Fuzz(&ops)

		addrs := datagen.RandAddresses(6)
		chain := newTestChain(t, addrs...)
		ledger := uint32(1)

		for _, op := range ops {
			ledger += uint32(op.Gap % 3)
			from, to := addrs[int(op.From)%len(addrs)], addrs[int(op.To)%len(addrs)]

			svc := chain.at(ledger)
			var err error
			if op.Revoke {
				err = svc.Revoke(from, from)
			} else {
				var expiry uint32
				if op.Expiry%4 != 0 {
					expiry = ledger + uint32(op.Expiry%8) + 1
				}
				err = svc.Delegate(from, from, to, expiry)
			}
			if err != nil {
				require.True(t, reverts.IsRevertErr(err), "seed %d: %v", seed, err)
				continue
			}
			chain.commit()

			svc = chain.at(ledger)
			for _, addr := range addrs {
				path := activeChain(t, svc, addr)
				seen := make(map[thor.Address]bool)
				for _, a := range path {
					assert.False(t, seen[a], "seed %d: %v revisits %v", seed, path, a)
					seen[a] = true
				}
				assert.LessOrEqual(t, len(path)-1, MaxChainDepth, "seed %d: %v", seed, path)

				effective, err := svc.EffectiveVoter(addr)
				require.NoError(t, err)
				assert.Equal(t, path[len(path)-1], effective, "seed %d", seed)
			}
		}
	}
}

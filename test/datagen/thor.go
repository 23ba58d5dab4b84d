// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package datagen

import (
	"crypto/rand"

	"github.com/vechain/thor-vault/thor"
)

func RandomHash() thor.Bytes32 {
	var b32 thor.Bytes32

	rand.Read(b32[:])
	return b32
}

func RandAddress() (addr thor.Address) {
	rand.Read(addr[:])
	return
}

// RandAddresses returns n distinct random addresses.
func RandAddresses(n int) []thor.Address {
	seen := make(map[thor.Address]struct{}, n)
	addrs := make([]thor.Address, 0, n)
	for len(addrs) < n {
		a := RandAddress()
		if _, ok := seen[a]; ok {
			continue
		}
		seen[a] = struct{}{}
		addrs = append(addrs, a)
	}
	return addrs
}

// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package gascharger

import (
	"fmt"

	"github.com/vechain/thor-vault/thor"
)

// GasUser consumes gas, usually backed by xenv.Environment.
type GasUser interface {
	UseGas(gas uint64)
}

// Charger forwards charges to the gas user and keeps a per operation breakdown.
type Charger struct {
	user           GasUser
	sloadOps       uint64
	sstoreSetOps   uint64
	sstoreResetOps uint64
	customGas      uint64
	totalGas       uint64
}

func New(user GasUser) *Charger {
	return &Charger{user: user}
}

func (c *Charger) Charge(gas uint64) {
	c.totalGas += gas

	switch {
	case gas%thor.SstoreSetGas == 0 && gas > 0:
		c.sstoreSetOps += gas / thor.SstoreSetGas
	case gas%thor.SstoreResetGas == 0 && gas > 0:
		c.sstoreResetOps += gas / thor.SstoreResetGas
	case gas%thor.SloadGas == 0 && gas > 0:
		c.sloadOps += gas / thor.SloadGas
	default:
		c.customGas += gas
	}

	if c.user != nil {
		c.user.UseGas(gas)
	}
}

func (c *Charger) Breakdown() string {
	return fmt.Sprintf(
		"SLOAD: %d ops (%d gas) | SSTORE_SET: %d ops (%d gas) | SSTORE_RESET: %d ops (%d gas) | CUSTOM: %d gas | TOTAL: %d gas",
		c.sloadOps,
		c.sloadOps*thor.SloadGas,
		c.sstoreSetOps,
		c.sstoreSetOps*thor.SstoreSetGas,
		c.sstoreResetOps,
		c.sstoreResetOps*thor.SstoreResetGas,
		c.customGas,
		c.totalGas,
	)
}

func (c *Charger) TotalGas() uint64 {
	return c.totalGas
}

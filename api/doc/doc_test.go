// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package doc

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVersion(t *testing.T) {
	assert.Regexp(t, regexp.MustCompile(`^\d+(\.\d+){2}$`), Version())
}

func TestPaths(t *testing.T) {
	assert.IsIncreasing(t, Paths())
	assert.Subset(t, Paths(), []string{
		"/admin/health",
		"/delegations/{address}",
		"/delegations/{address}/history",
		"/delegations/{address}/effective-voter",
		"/events",
		"/proposals/{id}",
		"/vault/most-active",
		"/vault/reputation/{address}",
		"/vault/signers",
	})
}

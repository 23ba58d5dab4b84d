// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package reverts

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

var errSentinel = errors.New("sentinel")

func TestIsRevertErr(t *testing.T) {
	assert.False(t, IsRevertErr(nil))
	assert.False(t, IsRevertErr("not an error"))
	assert.False(t, IsRevertErr(errSentinel))

	err := New(errSentinel)
	assert.True(t, IsRevertErr(err))
	assert.True(t, IsRevertErr(errors.WithMessage(err, "wrapped")))
	assert.ErrorIs(t, err, errSentinel)
	assert.Equal(t, "sentinel", err.Reason())

	assert.Equal(t, "bad 1", Newf("bad %d", 1).Error())
}

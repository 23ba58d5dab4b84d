// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package thor

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAddress(t *testing.T) {
	addr, err := ParseAddress("0x7567d83b7b8d80addcb281a71d54fc7b3364ffed")
	require.NoError(t, err)
	assert.Equal(t, "0x7567d83b7b8d80addcb281a71d54fc7b3364ffed", addr.String())

	noPrefix, err := ParseAddress("7567d83b7b8d80addcb281a71d54fc7b3364ffed")
	require.NoError(t, err)
	assert.Equal(t, addr, noPrefix)

	_, err = ParseAddress("0x7567")
	assert.EqualError(t, err, "invalid length")

	_, err = ParseAddress("1x7567d83b7b8d80addcb281a71d54fc7b3364ffed")
	assert.EqualError(t, err, "invalid prefix")

	_, err = ParseAddress("0xzz67d83b7b8d80addcb281a71d54fc7b3364ffed")
	assert.Error(t, err)
}

func TestAddressJSON(t *testing.T) {
	addr := BytesToAddress([]byte("signer"))

	data, err := json.Marshal(&addr)
	require.NoError(t, err)

	var decoded Address
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, addr, decoded)
	assert.False(t, decoded.IsZero())
	assert.True(t, Address{}.IsZero())
}

func TestBlake2b(t *testing.T) {
	a := []byte("delegation")
	b := []byte("signer")

	assert.Equal(t, Blake2b(append(append([]byte{}, a...), b...)), Blake2b(a, b))
	assert.NotEqual(t, Blake2b(a), Blake2b(b))
}

func TestNameToSlot(t *testing.T) {
	slot := NameToSlot("delegation")
	assert.Equal(t, []byte("delegation"), slot[32-len("delegation"):])

	parsed, err := ParseBytes32(slot.String())
	require.NoError(t, err)
	assert.Equal(t, slot, parsed)
}

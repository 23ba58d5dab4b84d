// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package log

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithContextFollowsHandler(t *testing.T) {
	logger := WithContext("pkg", "test")

	var buf bytes.Buffer
	SetHandler(NewHandler(&buf, LevelInfo, true))
	defer SetHandler(NewHandler(&bytes.Buffer{}, LevelCrit, true))

	logger.Debug("hidden")
	logger.Info("shown", "key", "value")

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "shown", record["msg"])
	assert.Equal(t, "test", record["pkg"])
	assert.Equal(t, "value", record["key"])
}

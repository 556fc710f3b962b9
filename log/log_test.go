// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package log

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTerminalLogger(t *testing.T) {
	var buf bytes.Buffer
	l := NewTerminal(&buf, LevelInfo)

	l.Debug("hidden", "k", 1)
	assert.Empty(t, buf.String())

	l.Info("joined pool", "account", "0xabc")
	assert.Contains(t, buf.String(), "joined pool")
	assert.Contains(t, buf.String(), "account=0xabc")
}

func TestJSONLogger(t *testing.T) {
	var buf bytes.Buffer
	l := NewJSON(&buf, LevelDebug)
	l.Debug("era started", "era", 3)
	assert.Contains(t, buf.String(), `"msg":"era started"`)
	assert.Contains(t, buf.String(), `"era":3`)
}

func TestFromVerbosity(t *testing.T) {
	assert.Equal(t, LevelCrit, FromVerbosity(0))
	assert.Equal(t, LevelInfo, FromVerbosity(3))
	assert.Equal(t, LevelTrace, FromVerbosity(5))
}

func TestSetDefaultReachesEarlierLoggers(t *testing.T) {
	scoped := WithContext("pkg", "early")
	nested := scoped.With("sub", 1)

	var buf bytes.Buffer
	SetDefault(NewJSON(&buf, LevelInfo))
	defer SetDefault(Discard())

	scoped.Info("hello")
	nested.Debug("dropped")
	nested.Warn("careful")

	out := buf.String()
	assert.Contains(t, out, `"pkg":"early"`)
	assert.Contains(t, out, `"msg":"hello"`)
	assert.Contains(t, out, `"sub":1`)
	assert.Contains(t, out, `"msg":"careful"`)
	assert.NotContains(t, out, "dropped")
}

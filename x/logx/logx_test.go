//go:build !(rp2040 || rp2350)

package logx

import (
	"bytes"
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggerFields(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf, false)
	defer SetOutput(os.Stderr, false)

	New("menu").Info("selected", "index", 3)
	New("rotary").Error("source failed", errors.New("fifo"), "drops", uint32(2))

	out := buf.String()
	assert.Contains(t, out, `"component":"menu"`)
	assert.Contains(t, out, `"index":3`)
	assert.Contains(t, out, `"error":"fifo"`)
	assert.Contains(t, out, `"drops":2`)
}

func TestSetLevel(t *testing.T) {
	require.NoError(t, SetLevel("warn"))
	defer func() { _ = SetLevel("debug") }()

	var buf bytes.Buffer
	SetOutput(&buf, false)
	defer SetOutput(os.Stderr, false)

	l := New("x")
	l.Info("hidden")
	l.Warn("shown")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")

	assert.Error(t, SetLevel("loud"))
}

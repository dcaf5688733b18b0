package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWithWriter(t *testing.T) {
	t.Run("production writes JSON", func(t *testing.T) {
		var buf bytes.Buffer
		NewWithWriter(&buf, "text", true).Info("hello", "k", "v")

		var line map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
		assert.Equal(t, "hello", line["msg"])
		assert.Equal(t, "skilloncall", line["service"])
	})

	t.Run("development writes text with debug", func(t *testing.T) {
		var buf bytes.Buffer
		NewWithWriter(&buf, "", false).Debug("details")
		assert.Contains(t, buf.String(), "msg=details")
	})

	t.Run("production drops debug", func(t *testing.T) {
		var buf bytes.Buffer
		NewWithWriter(&buf, "json", true).Debug("details")
		assert.Empty(t, buf.String())
	})
}

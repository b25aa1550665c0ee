package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWithWriter_JSON(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(&buf, false)

	log.Info().Str("account_id", "acc-1").Msg("Deposit processed")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "wallet-ledger", line["service"])
	assert.Equal(t, "acc-1", line["account_id"])
	assert.Equal(t, "Deposit processed", line["message"])
	assert.Contains(t, line, "time")
}

func TestNewWithWriter_Pretty(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(&buf, true)

	log.Warn().Msg("Reconciliation mismatch")

	assert.Contains(t, buf.String(), "Reconciliation mismatch")
	assert.Contains(t, buf.String(), "WRN")
}

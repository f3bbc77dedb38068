package ops

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"main/internal/schema"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadFullConfig(t *testing.T) {
	path := writeConfig(t, `{
		"strategy": {"lotSize": 100, "positionLimit": 50, "unload": 10},
		"trend": {"conversionLength": 5, "baselineLength": 13, "leadingSpanBLength": 26},
		"venue": {"traded": "etf", "feePerLot": 2},
		"journal": {"dir": "/tmp/journal", "segmentMaxBytes": 1024},
		"store": {"dsn": "host=localhost user=trader"},
		"profiler": {"address": "http://localhost:4040"}
	}`)

	loaded, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, schema.Quantity(100), loaded.Strategy.LotSize)
	assert.Equal(t, schema.Quantity(50), loaded.Strategy.PositionLimit)
	assert.Equal(t, schema.Quantity(10), loaded.Strategy.Unload)
	assert.Equal(t, 13, loaded.Strategy.Trend.BaselineLength)
	assert.Equal(t, schema.InstrumentETF, loaded.Venue.Traded)
	assert.Equal(t, schema.Fee(2), loaded.Venue.FeePerLot)
	assert.Equal(t, "/tmp/journal", loaded.Journal.Dir)
	assert.Equal(t, "host=localhost user=trader", loaded.StoreDSN)
	assert.Equal(t, "http://localhost:4040", loaded.Profiler)
}

func TestLoadEmptyPathYieldsDefaults(t *testing.T) {
	loaded, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, schema.Quantity(0), loaded.Strategy.LotSize)
	assert.Equal(t, schema.InstrumentFuture, loaded.Venue.Traded)
	assert.Empty(t, loaded.StoreDSN)
}

func TestLoadRejectsBadValues(t *testing.T) {
	for name, body := range map[string]string{
		"negative lot size":   `{"strategy": {"lotSize": -1}}`,
		"unload beyond limit": `{"strategy": {"positionLimit": 10, "unload": 20}}`,
		"negative trend":      `{"trend": {"baselineLength": -5}}`,
		"unknown instrument":  `{"venue": {"traded": "bond"}}`,
		"negative fee":        `{"venue": {"feePerLot": -1}}`,
		"malformed json":      `{`,
	} {
		t.Run(name, func(t *testing.T) {
			_, err := Load(writeConfig(t, body))
			require.Error(t, err)
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)
}

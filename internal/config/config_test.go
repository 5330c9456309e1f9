package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"phon-similarity/internal/match"
	"phon-similarity/internal/score"
)

func TestParse(t *testing.T) {
	yaml := `
table:
  path: phon_features.csv
  key_column: 0
scoring:
  mode: orthographic
  workers: 8
cache:
  redis_addr: localhost:6379
  redis_db: 2
  ttl: 24h
`

	c, err := Parse([]byte(yaml))
	require.NoError(t, err)

	assert.Equal(t, "phon_features.csv", c.Table.Path)
	require.NotNil(t, c.Table.KeyColumn)
	assert.Equal(t, 0, *c.Table.KeyColumn)
	assert.Equal(t, 2, c.Table.FeatureOffset)
	assert.Equal(t, match.ModeOrthographic, c.Mode())
	assert.Equal(t, 8, c.Scoring.Workers)
	assert.Equal(t, "localhost:6379", c.Cache.RedisAddr)
	assert.Equal(t, 2, c.Cache.RedisDB)
	assert.Equal(t, "phonsim:", c.Cache.Prefix)
	assert.Equal(t, 24*time.Hour, c.Cache.TTL)
	assert.Len(t, c.IngestOptions(), 2)
}

func TestParse_Defaults(t *testing.T) {
	c, err := Parse([]byte("table:\n  path: x.csv\n"))
	require.NoError(t, err)

	assert.Equal(t, 1, *c.Table.KeyColumn)
	assert.Equal(t, match.ModePhonetic, c.Mode())
	assert.Equal(t, score.DefaultWorkers, c.Scoring.Workers)
	assert.Empty(t, c.Cache.RedisAddr)
	assert.Equal(t, *Default().Table.KeyColumn, *c.Table.KeyColumn)
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		errText string
	}{
		{"bad yaml", "table: [", "failed to parse config YAML"},
		{"bad mode", "scoring:\n  mode: semantic\n", "scoring.mode"},
		{"key column after features", "table:\n  key_column: 2\n", "table.key_column"},
		{"negative ttl", "cache:\n  ttl: -1m\n", "cache.ttl"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errText)
		})
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "phonsim.yaml")
	require.NoError(t, os.WriteFile(path, []byte("scoring:\n  workers: 2\n"), 0o644))

	c, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 2, c.Scoring.Workers)

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestMarshalRoundTrip(t *testing.T) {
	c := Default()
	c.Table.Path = "sheet.csv"
	c.Cache.TTL = time.Hour

	data, err := Marshal(c)
	require.NoError(t, err)

	back, err := Parse(data)
	require.NoError(t, err)
	assert.Equal(t, c, back)
}

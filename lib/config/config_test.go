package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, DefaultLogFile, cfg.Log.File)
	assert.Equal(t, DefaultLogLevel, cfg.Log.Level)
	assert.Equal(t, DefaultAsicdbAddr, cfg.Asicdb.Addr)
	assert.Equal(t, DefaultDriverName, cfg.Driver.Name)
	assert.Equal(t, DefaultMetricsListen, cfg.Metrics.ListenAddress)
	assert.NoError(t, cfg.Validate())
}

func TestParse(t *testing.T) {
	cfg, err := Parse([]byte(`
log:
  level: debug
asicdb:
  addr: unix:/run/openvswitch/asic.sock
driver:
  warmboot_file: /var/lib/gosai/warmboot.db
  restart_warm: true
  capacity:
    fec: 128
metrics:
  listen_address: 127.0.0.1:9200
`))
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, DefaultLogFile, cfg.Log.File)
	assert.Equal(t, "unix:/run/openvswitch/asic.sock", cfg.Asicdb.Addr)
	assert.Equal(t, DefaultDriverName, cfg.Driver.Name)
	assert.True(t, cfg.Driver.RestartWarm)
	assert.Equal(t, 128, cfg.Driver.Capacity.FEC)
	assert.Equal(t, 0, cfg.Driver.Capacity.NextHop)
	assert.Equal(t, "127.0.0.1:9200", cfg.Metrics.ListenAddress)
}

func TestParseInvalid(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"bad yaml", "log: [unterminated"},
		{"bad level", "log:\n  level: loud\n"},
		{"negative capacity", "driver:\n  capacity:\n    next_hop: -1\n"},
		{"warm without journal", "driver:\n  restart_warm: true\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data))
			assert.Error(t, err)
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "syncd.yaml")
	require.NoError(t, os.WriteFile(path, []byte("asicdb:\n  addr: tcp:10.0.0.1:6650\n"), 0644))
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "tcp:10.0.0.1:6650", cfg.Asicdb.Addr)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

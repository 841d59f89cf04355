package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigMissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadConfigPartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "finbook.yaml")
	require.NoError(t, os.WriteFile(path, []byte("currency: USD\n"), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "USD", cfg.Currency)
	assert.Equal(t, DefaultConfig().Snapshot, cfg.Snapshot)
	assert.Equal(t, DefaultConfig().PageSize, cfg.PageSize)
}

func TestLoadConfigFullFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "finbook.yaml")
	content := "snapshot: /tmp/ledger.json\ncurrency: GBP\npageSize: 50\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/ledger.json", cfg.Snapshot)
	assert.Equal(t, "GBP", cfg.Currency)
	assert.Equal(t, 50, cfg.PageSize)
}

func TestLoadConfigInvalidYaml(t *testing.T) {
	path := filepath.Join(t.TempDir(), "finbook.yaml")
	require.NoError(t, os.WriteFile(path, []byte("snapshot: [broken\n"), 0o644))

	_, err := LoadConfig(path)
	assert.Error(t, err)
}

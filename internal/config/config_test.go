package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_NoFile(t *testing.T) {
	cfg, err := Load(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, DefaultDBPath, cfg.DBPath)
	assert.Equal(t, time.Duration(DefaultLoadTimeoutSeconds)*time.Second, cfg.LoadTimeout())
	assert.Equal(t, time.Duration(DefaultQueryTimeoutSeconds)*time.Second, cfg.QueryTimeout())
}

func TestLoad_File(t *testing.T) {
	dir := t.TempDir()
	data := `
dbPath: /var/lib/shopgraph/graph.db
sources:
  customers: https://example.com/customers.csv
  purchases: /data/purchases.csv
queryTimeoutSeconds: 30
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "shopgraph.yml"), []byte(data), 0o644))

	cfg, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, "/var/lib/shopgraph/graph.db", cfg.DBPath)
	assert.Equal(t, "https://example.com/customers.csv", cfg.Sources.Customers)
	assert.Equal(t, "/data/purchases.csv", cfg.Sources.Purchases)
	assert.Equal(t, 30*time.Second, cfg.QueryTimeout())
	assert.Equal(t, DefaultLoadTimeoutSeconds, cfg.LoadTimeoutSeconds, "unset values fall back to defaults")
}

func TestLoad_BadYAML(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "shopgraph.yml"), []byte("dbPath: [oops"), 0o644))

	_, err := Load(dir)
	require.Error(t, err)
}

package common

import (
	"io/ioutil"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const configSample = `
[inventory]
countries = ["US", "DE"]
probabilities = [0.9, 0.1]
max-quantity = 1000
restock-horizon-seconds = 3600
nodes-per-row = 4
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "gen.toml")
	require.NoError(t, ioutil.WriteFile(path, []byte(content), 0644))
	return path
}

func TestNewConfig(t *testing.T) {
	c, err := NewConfig(writeConfig(t, configSample))
	require.NoError(t, err)
	require.Equal(t, []string{"US", "DE"}, c.Inventory.Countries)
	require.Equal(t, []float64{0.9, 0.1}, c.Inventory.Probabilities)
	require.Equal(t, int64(1000), c.Inventory.MaxQuantity)
	require.Equal(t, int64(3600), c.Inventory.RestockHorizonSeconds)
	require.Equal(t, 4, c.Inventory.NodesPerRow)
}

func TestNewConfigMismatchedProbabilities(t *testing.T) {
	_, err := NewConfig(writeConfig(t, `
[inventory]
countries = ["US", "DE"]
probabilities = [1.0]
`))
	require.Error(t, err)
}

func TestNewConfigMissingFile(t *testing.T) {
	_, err := NewConfig(filepath.Join(t.TempDir(), "absent.toml"))
	require.Error(t, err)
}

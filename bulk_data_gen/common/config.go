// Optional external generation config in TOML format, loadable from a local
// file or an http(s) URL.

package common

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/pelletier/go-toml"
)

// InventoryConfig overrides the built-in generation parameters of the
// e-commerce inventory use case.
type InventoryConfig struct {
	Countries             []string  `toml:"countries"`
	Probabilities         []float64 `toml:"probabilities"`
	MaxQuantity           int64     `toml:"max-quantity"`
	RestockHorizonSeconds int64     `toml:"restock-horizon-seconds"`
	NodesPerRow           int       `toml:"nodes-per-row"`
}

type ExternalConfig struct {
	Inventory InventoryConfig `toml:"inventory"`
}

var Config *ExternalConfig

func (c *ExternalConfig) String() string {
	var buf strings.Builder
	buf.WriteString(fmt.Sprintf("inventory: countries %v, probabilities %v\n", c.Inventory.Countries, c.Inventory.Probabilities))
	buf.WriteString(fmt.Sprintf("  max-quantity: %d\n", c.Inventory.MaxQuantity))
	buf.WriteString(fmt.Sprintf("  restock-horizon-seconds: %d\n", c.Inventory.RestockHorizonSeconds))
	buf.WriteString(fmt.Sprintf("  nodes-per-row: %d\n", c.Inventory.NodesPerRow))
	return buf.String()
}

func NewConfig(path string) (*ExternalConfig, error) {
	var tree *toml.Tree
	var err error
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		tree, err = LoadURL(path)
	} else {
		tree, err = toml.LoadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("config loading failed: %v", err)
	}
	config := ExternalConfig{}
	err = tree.Unmarshal(&config)
	if err != nil {
		return nil, fmt.Errorf("config unmarshall failed: %v", err)
	}
	if len(config.Inventory.Countries) != len(config.Inventory.Probabilities) {
		return nil, fmt.Errorf("config mismatch: %d countries vs %d probabilities",
			len(config.Inventory.Countries), len(config.Inventory.Probabilities))
	}
	return &config, nil
}

// LoadURL creates a Tree from a URL resource.
func LoadURL(url string) (tree *toml.Tree, err error) {
	resp, err := http.Get(url)
	if err != nil {
		return nil, fmt.Errorf("config loading failed: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusOK {
		tree, err := toml.LoadReader(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("config parsing failed: %v", err)
		}
		return tree, nil
	}
	return nil, fmt.Errorf("config loading failed: response status code is: %s", resp.Status)
}

package treasure

import (
	_ "embed"
)

//go:embed defaults/treasures.yaml
var defaultCatalogYAML []byte

// Default returns the embedded default catalog.
func Default() (*Catalog, error) {
	return Parse(defaultCatalogYAML)
}

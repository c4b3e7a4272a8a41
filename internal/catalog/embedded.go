package catalog

import (
	"bytes"
	_ "embed"
)

// EmbeddedSource is the Snapshot source name of the built-in catalog.
const EmbeddedSource = "embedded"

//go:embed data/stod.json
var embeddedCatalog []byte

// Embedded returns the catalog compiled into the binary. It is used when no
// catalog file is configured or the configured file does not exist.
func Embedded() (*Snapshot, error) {
	records, err := DecodeJSON(bytes.NewReader(embeddedCatalog))
	if err != nil {
		return nil, err
	}
	return NewSnapshot(records, EmbeddedSource)
}

package catalog

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"

	"github.com/hyperjump/stodlotsen/internal/models"
)

const fingerprintPrefix = "sha256:"

// Fingerprint returns a stable content hash of records in catalog order.
// Equal catalogs yield equal fingerprints regardless of the file format they came from.
func Fingerprint(records []*models.SupportRecord) string {
	h := sha256.New()
	enc := json.NewEncoder(h)
	for _, r := range records {
		_ = enc.Encode(r)
	}
	return fingerprintPrefix + hex.EncodeToString(h.Sum(nil))[:16]
}

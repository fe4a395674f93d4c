package pricewatch

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"beerwatch-backend/lib/pricing"
)

// Observation is one (date, name, price) fact. rows are append-only, a
// stored observation is never mutated or deleted.
type Observation struct {
	Date  string
	Name  string
	Price float64
	Hash  string
}

// identity tokens are truncated to keep the store compact. 8 hex chars is
// enough for a catalogue of a few thousand rows per day; a collision would
// surface as a silently skipped insert, which is accepted.
const identityLength = 8

// Identity derives the uniqueness key for an observation. equal inputs
// always produce equal tokens, which is what makes re-ingestion of the
// same page a no-op. the price goes in through its canonical two-decimal
// rendering so identity never depends on upstream formatting.
func Identity(date, name string, price float64) string {
	input := fmt.Sprintf("%s-%s-%s", date, name, pricing.Format(price))
	sum := sha256.Sum256([]byte(input))
	return hex.EncodeToString(sum[:])[:identityLength]
}

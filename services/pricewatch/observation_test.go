package pricewatch

import (
	"crypto/sha256"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIdentity(t *testing.T) {
	token := Identity("2026-01-01", "Lager A", 3.49)
	require.Len(t, token, 8)

	require.Equal(t, token, Identity("2026-01-01", "Lager A", 3.49))

	require.NotEqual(t, token, Identity("2026-01-02", "Lager A", 3.49))
	require.NotEqual(t, token, Identity("2026-01-01", "Lager B", 3.49))
	require.NotEqual(t, token, Identity("2026-01-01", "Lager A", 3.99))
}

func TestIdentityCanonicalFormatting(t *testing.T) {
	// the digest input always carries the two-decimal rendering, so
	// upstream formatting ("7,5", "7.50 €") can never split one price
	// into two identities
	sum := sha256.Sum256([]byte("2026-01-01-Lager A-7.50"))
	require.Equal(
		t,
		hex.EncodeToString(sum[:])[:8],
		Identity("2026-01-01", "Lager A", 7.5),
	)
}

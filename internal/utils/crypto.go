// internal/utils/crypto.go
package utils

import (
	"crypto/rand"
	"math/big"
)

// RandomSuffix returns a number in [0, max) from crypto/rand, used for the
// 4-digit suffix of business identifiers.
func RandomSuffix(max int64) (int64, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(max))
	if err != nil {
		return 0, err
	}
	return n.Int64(), nil
}

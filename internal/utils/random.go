package utils

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"
)

func SecureRandomInt(max int) int {
	n, err := rand.Int(rand.Reader, big.NewInt(int64(max)))
	if err != nil {
		return 0
	}
	return int(n.Int64())
}

// GenerateTripID returns TRIP<unix ms><4 digit suffix in 1000-9999>.
func GenerateTripID(now time.Time) string {
	return fmt.Sprintf("%s%d%d", TripIDPrefix, now.UnixMilli(), 1000+SecureRandomInt(9000))
}

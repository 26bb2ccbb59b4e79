package image

import (
	"crypto/sha256"
	"encoding/binary"
	"fmt"
	"strings"
)

// deterministicSeed derives a stable positive pseudo-random seed from the
// request identity, so repeated generations of the same scene state receive
// the same seed when the provider omits one.
func deterministicSeed(values ...any) int {
	if len(values) == 0 {
		return 1
	}
	parts := make([]string, 0, len(values))
	for _, v := range values {
		parts = append(parts, fmt.Sprint(v))
	}
	sum := sha256.Sum256([]byte(strings.Join(parts, "|")))
	n := binary.BigEndian.Uint32(sum[:4]) % 2147483647
	if n == 0 {
		n = binary.BigEndian.Uint32(sum[4:8])%2147483646 + 1
	}
	return int(n)
}

package cache

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"strings"
)

// Key derives the cache key for one user's search window. The query is
// case-folded and trimmed first, so incidental casing and whitespace hit
// the same entry. The user id keeps results private to the requester:
// message and people results differ per user.
func Key(userID, query string, offset, limit int) string {
	normalized := strings.ToLower(strings.TrimSpace(query))
	combined := fmt.Sprintf("%s:%s:o%d:l%d", userID, normalized, offset, limit)
	sum := md5.Sum([]byte(combined))
	return hex.EncodeToString(sum[:])
}

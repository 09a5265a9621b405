package storage

import "strings"

// ObjectKey extracts the object key from a URL served under the bucket's
// public base URL. It returns false for external URLs, which must be
// passed through unsigned.
func ObjectKey(publicBaseURL, rawURL string) (string, bool) {
	base := strings.TrimSuffix(publicBaseURL, "/")
	if base == "" || rawURL == "" {
		return "", false
	}
	prefix := base + "/"
	if !strings.HasPrefix(rawURL, prefix) {
		return "", false
	}
	key := strings.TrimPrefix(rawURL, prefix)
	if key == "" {
		return "", false
	}
	return key, true
}

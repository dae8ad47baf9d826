package refstore

import (
	"net/http"
	"strings"
)

// DefaultClientID is the partition used when no address header is present.
const DefaultClientID = "default-user"

// DeriveClientID turns forwarded-address headers into a store partition key.
// This is a coarse heuristic, not authentication: any caller can spoof these
// headers. Keep all identity derivation behind this function so it can be
// replaced with real session identity without touching store logic.
func DeriveClientID(header http.Header) string {
	if forwarded := header.Get("X-Forwarded-For"); forwarded != "" {
		first := strings.TrimSpace(strings.Split(forwarded, ",")[0])
		if first != "" {
			return first
		}
	}
	if real := header.Get("X-Real-IP"); real != "" {
		return real
	}
	return DefaultClientID
}

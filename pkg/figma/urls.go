package figma

import "regexp"

// Accepted URL shapes. Extraction fails by returning ok=false; it never
// panics on unexpected input.
var (
	fileKeyPattern = regexp.MustCompile(`/(?:file|design)/([A-Za-z0-9]+)`)
	teamIDPattern  = regexp.MustCompile(`/files/team/([0-9]+)`)
)

// ExtractFileKey pulls the opaque file key out of a /file/<key>/... or
// /design/<key>/... URL.
func ExtractFileKey(rawURL string) (string, bool) {
	match := fileKeyPattern.FindStringSubmatch(rawURL)
	if match == nil {
		return "", false
	}
	return match[1], true
}

// ExtractTeamID pulls the numeric team ID out of a /files/team/<id>/... URL.
func ExtractTeamID(rawURL string) (string, bool) {
	match := teamIDPattern.FindStringSubmatch(rawURL)
	if match == nil {
		return "", false
	}
	return match[1], true
}

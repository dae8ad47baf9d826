package reconciler

import "figdash/pkg/models"

// Merge combines the device-local list with the server list into one
// duplicate-free working set. The server copy wins whenever both sides hold
// the same key; device-only entries are appended in their local order and
// also returned separately so the caller can propagate them to the server.
// Merging the same inputs twice yields the same result.
func Merge(local, server []models.FileReference) (merged, localOnly []models.FileReference) {
	merged = make([]models.FileReference, len(server))
	copy(merged, server)

	seen := make(map[string]struct{}, len(server))
	for _, ref := range server {
		seen[ref.Key] = struct{}{}
	}

	for _, ref := range local {
		if _, ok := seen[ref.Key]; ok {
			continue
		}
		seen[ref.Key] = struct{}{}
		merged = append(merged, ref)
		localOnly = append(localOnly, ref)
	}
	return merged, localOnly
}

// MergeDiscovered combines curated references with freshly discovered remote
// ones for display. Curated entries come first and take precedence: a
// discovered entry whose key is already curated is dropped so the same file
// never shows twice.
func MergeDiscovered(curated, discovered []models.FileReference) []models.FileReference {
	out := make([]models.FileReference, 0, len(curated)+len(discovered))
	seen := make(map[string]struct{}, len(curated))

	for _, ref := range curated {
		if _, ok := seen[ref.Key]; ok {
			continue
		}
		seen[ref.Key] = struct{}{}
		if ref.ProjectName == "" {
			ref.ProjectName = models.DefaultProjectName
		}
		out = append(out, ref)
	}

	for _, ref := range discovered {
		if _, ok := seen[ref.Key]; ok {
			continue
		}
		seen[ref.Key] = struct{}{}
		out = append(out, ref)
	}
	return out
}

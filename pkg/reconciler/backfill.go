package reconciler

import (
	"context"
	"time"

	"figdash/pkg/log"
)

// Backfill fills in missing thumbnails by fetching live metadata for each
// reference that has a project but no image yet. Requests run sequentially
// with a pause between them to stay friendly to rate limits. Returns how many
// thumbnails were filled. A nil fetcher or canceled context ends the pass
// early; per-file failures are logged and skipped.
func (e *Engine) Backfill(ctx context.Context) int {
	if e.fetcher == nil {
		return 0
	}

	e.mu.Lock()
	var keys []string
	for _, ref := range e.refs {
		// Manually added references carry no project and often point at
		// files the token cannot read; skip them rather than burn requests.
		if ref.ThumbnailURL == "" && ref.ProjectID != "" {
			keys = append(keys, ref.Key)
		}
	}
	e.mu.Unlock()

	if len(keys) == 0 {
		return 0
	}
	log.Info().Int("candidates", len(keys)).Msg("Thumbnail backfill started")

	filled := 0
	for i, key := range keys {
		if i > 0 {
			select {
			case <-ctx.Done():
				return filled
			case <-time.After(e.backfillDelay):
			}
		}

		detail, err := e.fetcher.File(ctx, key)
		if err != nil {
			e.syncLog.Appendf("thumbnail fetch for %s failed: %v", key, err)
			continue
		}
		if detail.ThumbnailURL == "" {
			continue
		}
		if e.SetThumbnail(key, detail.ThumbnailURL) {
			filled++
		}
	}

	if filled > 0 {
		e.syncLog.Appendf("backfilled %d thumbnail(s)", filled)
	}
	log.Info().Int("filled", filled).Msg("Thumbnail backfill finished")
	return filled
}

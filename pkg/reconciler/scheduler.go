package reconciler

import (
	"context"
	"time"

	"figdash/pkg/log"
)

// StartAutoSync begins periodic background refreshes at the given interval.
// It is a no-op when auto-sync is already running. Returns whether a new
// loop was started.
func (e *Engine) StartAutoSync(interval time.Duration) bool {
	if interval <= 0 {
		return false
	}

	e.autoMu.Lock()
	defer e.autoMu.Unlock()
	if e.autoStop != nil {
		return false
	}

	stop := make(chan struct{})
	e.autoStop = stop
	e.autoWG.Add(1)

	go func() {
		defer e.autoWG.Done()
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		log.Info().Dur("interval", interval).Msg("Auto-sync started")
		for {
			select {
			case <-stop:
				log.Info().Msg("Auto-sync stopped")
				return
			case <-ticker.C:
				e.refresh(context.Background(), stop)
			}
		}
	}()
	return true
}

// StopAutoSync halts the periodic refresh loop and waits for it to exit. It
// is a no-op when auto-sync is not running.
func (e *Engine) StopAutoSync() {
	e.autoMu.Lock()
	if e.autoStop == nil {
		e.autoMu.Unlock()
		return
	}
	close(e.autoStop)
	e.autoStop = nil
	e.autoMu.Unlock()

	e.autoWG.Wait()
}

// AutoSyncRunning reports whether the periodic refresh loop is active.
func (e *Engine) AutoSyncRunning() bool {
	e.autoMu.Lock()
	defer e.autoMu.Unlock()
	return e.autoStop != nil
}

// SyncNow runs one immediate refresh, flagging the syncing state for its
// duration.
func (e *Engine) SyncNow(ctx context.Context) error {
	e.mu.Lock()
	if e.syncing {
		e.mu.Unlock()
		return nil
	}
	e.syncing = true
	e.mu.Unlock()

	defer func() {
		e.mu.Lock()
		e.syncing = false
		e.mu.Unlock()
	}()

	return e.refresh(ctx, nil)
}

// refresh pulls the server list and folds it into the working set. Entries
// only present locally survive the merge; the mirror is rewritten with the
// result. When stop is closed before the result lands, it is discarded so a
// halted scheduler never mutates state afterward.
func (e *Engine) refresh(ctx context.Context, stop <-chan struct{}) error {
	serverRefs, err := e.store.List(ctx, e.clientID)
	if err != nil {
		e.syncLog.Appendf("sync failed: %v", err)
		return err
	}

	if stop != nil {
		select {
		case <-stop:
			return nil
		default:
		}
	}

	e.mu.Lock()
	merged, _ := Merge(e.refs, serverRefs)
	e.refs = merged
	e.lastSync = time.Now()
	snapshot := e.snapshotLocked()
	e.mu.Unlock()

	e.mirror.Save(snapshot)
	e.syncLog.Appendf("synced %d file(s) from server", len(serverRefs))
	return nil
}

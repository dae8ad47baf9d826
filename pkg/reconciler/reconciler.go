// Package reconciler merges the device-local mirror and the server-side
// reference store into one authoritative working set and keeps both moving
// toward convergence. Mutations are local-first: the in-memory list and the
// mirror change synchronously, the server is updated in the background, and a
// failed server call never rolls back the local change.
package reconciler

import (
	"context"
	"sync"
	"time"

	"figdash/pkg/log"
	"figdash/pkg/models"
)

const defaultPushTimeout = 10 * time.Second

// Mirror is the device-local persistent copy of the list. Implementations
// must be best-effort: Load on failure yields an empty list, Save on failure
// is a logged no-op.
type Mirror interface {
	Load() []models.FileReference
	Save(refs []models.FileReference)
	Clear()
}

// ReferenceStore is the server-side copy of the list, partitioned by client
// identity. Calls may fail; the engine tolerates that.
type ReferenceStore interface {
	List(ctx context.Context, clientID string) ([]models.FileReference, error)
	Add(ctx context.Context, clientID string, ref models.FileReference) (bool, error)
	Remove(ctx context.Context, clientID, key string) (bool, error)
	Clear(ctx context.Context, clientID string) (int, error)
}

// FileFetcher fetches live single-file metadata; used by the thumbnail
// backfill. A nil fetcher disables all remote-API work (no token configured).
type FileFetcher interface {
	File(ctx context.Context, key string) (*models.FileDetail, error)
}

// Options tunes engine behavior; zero values select defaults.
type Options struct {
	BackfillDelay time.Duration // pause between backfill requests
	PushTimeout   time.Duration // per-call timeout for background server pushes
	SyncLogSize   int
}

// State is a point-in-time view of the engine for the UI layer.
type State struct {
	Files    []models.FileReference `json:"files"`
	Loading  bool                   `json:"loading"`
	Syncing  bool                   `json:"syncing"`
	LastSync *time.Time             `json:"last_sync,omitempty"`
	SyncLog  []string               `json:"sync_log"`
	AutoSync bool                   `json:"auto_sync"`
}

// Engine orchestrates the mirror and the store. It owns neither.
type Engine struct {
	mirror   Mirror
	store    ReferenceStore
	fetcher  FileFetcher
	clientID string

	backfillDelay time.Duration
	pushTimeout   time.Duration
	syncLog       *SyncLog

	mu       sync.Mutex
	refs     []models.FileReference
	loading  bool
	syncing  bool
	lastSync time.Time

	pushes sync.WaitGroup

	autoMu   sync.Mutex
	autoStop chan struct{}
	autoWG   sync.WaitGroup
}

// New creates an engine over the given stores. fetcher may be nil when no
// access token is configured; backfill and auto-sync then stay off.
func New(mirror Mirror, store ReferenceStore, fetcher FileFetcher, clientID string, opts Options) *Engine {
	if opts.BackfillDelay <= 0 {
		opts.BackfillDelay = 500 * time.Millisecond
	}
	if opts.PushTimeout <= 0 {
		opts.PushTimeout = defaultPushTimeout
	}
	return &Engine{
		mirror:        mirror,
		store:         store,
		fetcher:       fetcher,
		clientID:      clientID,
		backfillDelay: opts.BackfillDelay,
		pushTimeout:   opts.PushTimeout,
		syncLog:       NewSyncLog(opts.SyncLogSize),
		loading:       true,
	}
}

// Load populates the working set: mirror first (instant display), then the
// server list, merged server-wins. Device-only entries are pushed to the
// server in the background and the merged result is written back to the
// mirror so both sides converge.
func (e *Engine) Load(ctx context.Context) {
	local := e.mirror.Load()

	e.mu.Lock()
	e.refs = local
	// With mirror entries on screen the UI must not show a blank loading
	// state while the server portion is still in flight.
	e.loading = len(local) == 0
	e.mu.Unlock()

	serverRefs, err := e.store.List(ctx, e.clientID)
	if err != nil {
		e.syncLog.Appendf("load: server list failed: %v", err)
		e.mu.Lock()
		e.loading = false
		e.mu.Unlock()
		return
	}

	merged, localOnly := Merge(local, serverRefs)

	e.mu.Lock()
	e.refs = merged
	e.loading = false
	e.lastSync = time.Now()
	snapshot := e.snapshotLocked()
	e.mu.Unlock()

	e.mirror.Save(snapshot)
	log.Info().
		Int("local", len(local)).
		Int("server", len(serverRefs)).
		Int("merged", len(merged)).
		Msg("Reconciliation complete")

	if len(localOnly) > 0 {
		e.pushes.Add(1)
		go func() {
			defer e.pushes.Done()
			e.pushRefs(localOnly)
		}()
	}
}

// pushRefs propagates device-only entries to the server. Failures go to the
// sync log only; they never surface to the user synchronously.
func (e *Engine) pushRefs(refs []models.FileReference) {
	pushed := 0
	for _, ref := range refs {
		ctx, cancel := context.WithTimeout(context.Background(), e.pushTimeout)
		_, err := e.store.Add(ctx, e.clientID, ref)
		cancel()
		if err != nil {
			e.syncLog.Appendf("push %s failed: %v", ref.Key, err)
			continue
		}
		pushed++
	}
	if pushed > 0 {
		e.syncLog.Appendf("pushed %d local file(s) to server", pushed)
	}
}

// Add inserts ref at the front of the working set. Returns false without
// changing anything when the key is already present. The mirror is updated
// before Add returns; the server push runs in the background.
func (e *Engine) Add(ref models.FileReference) bool {
	e.mu.Lock()
	for _, existing := range e.refs {
		if existing.Key == ref.Key {
			e.mu.Unlock()
			return false
		}
	}
	if ref.ProjectName == "" {
		ref.ProjectName = models.DefaultProjectName
	}
	if ref.LastModified == "" {
		ref.LastModified = time.Now().UTC().Format(time.RFC3339)
	}
	e.refs = append([]models.FileReference{ref}, e.refs...)
	snapshot := e.snapshotLocked()
	e.mu.Unlock()

	e.mirror.Save(snapshot)

	e.pushes.Add(1)
	go func() {
		defer e.pushes.Done()
		ctx, cancel := context.WithTimeout(context.Background(), e.pushTimeout)
		defer cancel()
		if _, err := e.store.Add(ctx, e.clientID, ref); err != nil {
			e.syncLog.Appendf("add %s failed on server: %v", ref.Key, err)
		}
	}()
	return true
}

// Remove deletes the reference with the given key. Reports whether it was
// present; the server removal runs in the background.
func (e *Engine) Remove(key string) bool {
	e.mu.Lock()
	found := false
	for i, ref := range e.refs {
		if ref.Key == key {
			e.refs = append(e.refs[:i:i], e.refs[i+1:]...)
			found = true
			break
		}
	}
	if !found {
		e.mu.Unlock()
		return false
	}
	snapshot := e.snapshotLocked()
	e.mu.Unlock()

	e.mirror.Save(snapshot)

	e.pushes.Add(1)
	go func() {
		defer e.pushes.Done()
		ctx, cancel := context.WithTimeout(context.Background(), e.pushTimeout)
		defer cancel()
		if _, err := e.store.Remove(ctx, e.clientID, key); err != nil {
			e.syncLog.Appendf("remove %s failed on server: %v", key, err)
		}
	}()
	return true
}

// Clear empties the working set and mirror, returning how many entries were
// dropped. The server clear runs in the background.
func (e *Engine) Clear() int {
	e.mu.Lock()
	count := len(e.refs)
	e.refs = nil
	e.mu.Unlock()

	e.mirror.Clear()

	e.pushes.Add(1)
	go func() {
		defer e.pushes.Done()
		ctx, cancel := context.WithTimeout(context.Background(), e.pushTimeout)
		defer cancel()
		if _, err := e.store.Clear(ctx, e.clientID); err != nil {
			e.syncLog.Appendf("clear failed on server: %v", err)
		}
	}()
	return count
}

// SetThumbnail writes a backfilled thumbnail into the working set and the
// mirror, stamping LastModified. Returns false when the key is gone (for
// example removed while the backfill was in flight).
func (e *Engine) SetThumbnail(key, thumbnailURL string) bool {
	e.mu.Lock()
	found := false
	for i := range e.refs {
		if e.refs[i].Key == key {
			e.refs[i].ThumbnailURL = thumbnailURL
			e.refs[i].LastModified = time.Now().UTC().Format(time.RFC3339)
			found = true
			break
		}
	}
	if !found {
		e.mu.Unlock()
		return false
	}
	snapshot := e.snapshotLocked()
	e.mu.Unlock()

	e.mirror.Save(snapshot)
	return true
}

// List returns a copy of the current working set in display order.
func (e *Engine) List() []models.FileReference {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.snapshotLocked()
}

// State returns a point-in-time view for the UI.
func (e *Engine) State() State {
	e.autoMu.Lock()
	auto := e.autoStop != nil
	e.autoMu.Unlock()

	e.mu.Lock()
	defer e.mu.Unlock()

	state := State{
		Files:    e.snapshotLocked(),
		Loading:  e.loading,
		Syncing:  e.syncing,
		SyncLog:  e.syncLog.Entries(),
		AutoSync: auto,
	}
	if !e.lastSync.IsZero() {
		last := e.lastSync
		state.LastSync = &last
	}
	return state
}

// Loading reports whether the engine has nothing to show yet.
func (e *Engine) Loading() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.loading
}

// Syncing reports whether a user-requested sync is in flight.
func (e *Engine) Syncing() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.syncing
}

// LastSync returns the time of the last successful server refresh.
func (e *Engine) LastSync() time.Time {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.lastSync
}

// Log returns the recent sync log entries.
func (e *Engine) Log() []string {
	return e.syncLog.Entries()
}

// Wait blocks until all background server pushes have finished. Used on
// shutdown and in tests.
func (e *Engine) Wait() {
	e.pushes.Wait()
}

func (e *Engine) snapshotLocked() []models.FileReference {
	out := make([]models.FileReference, len(e.refs))
	copy(out, e.refs)
	return out
}

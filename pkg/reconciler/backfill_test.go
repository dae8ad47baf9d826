package reconciler

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"figdash/pkg/models"
)

// memFetcher serves canned file details keyed by file key.
type memFetcher struct {
	mu      sync.Mutex
	details map[string]*models.FileDetail
	calls   []string
}

func (f *memFetcher) File(_ context.Context, key string) (*models.FileDetail, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, key)
	detail, ok := f.details[key]
	if !ok {
		return nil, errors.New("file not found")
	}
	return detail, nil
}

// BackfillTestSuite tests the thumbnail backfill pass.
type BackfillTestSuite struct {
	suite.Suite
	mirror  *memMirror
	store   *memStore
	fetcher *memFetcher
}

// SetupTest runs before each test.
func (s *BackfillTestSuite) SetupTest() {
	s.mirror = &memMirror{}
	s.store = newMemStore()
	s.fetcher = &memFetcher{details: map[string]*models.FileDetail{}}
}

func (s *BackfillTestSuite) newEngine(refs []models.FileReference) *Engine {
	s.mirror.Save(refs)
	e := New(s.mirror, s.store, s.fetcher, "client-1", Options{BackfillDelay: time.Millisecond})
	e.Load(context.Background())
	e.Wait()
	return e
}

// TestFillsMissingThumbnails tests the happy path.
func (s *BackfillTestSuite) TestFillsMissingThumbnails() {
	s.fetcher.details["A"] = &models.FileDetail{Name: "a", ThumbnailURL: "https://img/a.png"}
	e := s.newEngine([]models.FileReference{
		{Key: "A", ProjectID: "p1"},
		{Key: "B", ProjectID: "p1", ThumbnailURL: "https://img/b.png"},
	})

	filled := e.Backfill(context.Background())
	e.Wait()

	s.Equal(1, filled)
	s.Equal([]string{"A"}, s.fetcher.calls)
	refs := e.List()
	s.Equal("https://img/a.png", refs[0].ThumbnailURL)
	s.Equal("https://img/a.png", s.mirror.Load()[0].ThumbnailURL)
}

// TestSkipsManualEntries tests that references without a project are never
// fetched.
func (s *BackfillTestSuite) TestSkipsManualEntries() {
	e := s.newEngine([]models.FileReference{{Key: "M"}})

	s.Equal(0, e.Backfill(context.Background()))
	e.Wait()
	s.Empty(s.fetcher.calls)
}

// TestContinuesPastFailures tests that one bad file does not stop the pass.
func (s *BackfillTestSuite) TestContinuesPastFailures() {
	s.fetcher.details["B"] = &models.FileDetail{Name: "b", ThumbnailURL: "https://img/b.png"}
	e := s.newEngine([]models.FileReference{
		{Key: "A", ProjectID: "p1"},
		{Key: "B", ProjectID: "p1"},
	})

	filled := e.Backfill(context.Background())
	e.Wait()

	s.Equal(1, filled)
	s.Len(s.fetcher.calls, 2)
	s.NotEmpty(e.Log())
}

// TestNilFetcherNoOp tests that backfill stays off without an API client.
func (s *BackfillTestSuite) TestNilFetcherNoOp() {
	e := New(s.mirror, s.store, nil, "client-1", Options{})
	e.Add(models.FileReference{Key: "A", ProjectID: "p1"})
	e.Wait()

	s.Equal(0, e.Backfill(context.Background()))
}

// TestCanceledContextStopsEarly tests that cancellation ends the pass between
// files.
func (s *BackfillTestSuite) TestCanceledContextStopsEarly() {
	s.fetcher.details["A"] = &models.FileDetail{Name: "a", ThumbnailURL: "https://img/a.png"}
	s.fetcher.details["B"] = &models.FileDetail{Name: "b", ThumbnailURL: "https://img/b.png"}
	e := s.newEngine([]models.FileReference{
		{Key: "A", ProjectID: "p1"},
		{Key: "B", ProjectID: "p1"},
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	filled := e.Backfill(ctx)
	e.Wait()

	s.LessOrEqual(filled, 1)
	s.LessOrEqual(len(s.fetcher.calls), 1)
}

// TestOutlivesLoadDeadline tests that a pass on its own context fills every
// reference even after the deadline used for the initial load has expired.
func (s *BackfillTestSuite) TestOutlivesLoadDeadline() {
	refs := make([]models.FileReference, 4)
	for i := range refs {
		key := string(rune('A' + i))
		refs[i] = models.FileReference{Key: key, ProjectID: "p1"}
		s.fetcher.details[key] = &models.FileDetail{Name: key, ThumbnailURL: "https://img/" + key + ".png"}
	}
	s.mirror.Save(refs)
	e := New(s.mirror, s.store, s.fetcher, "client-1", Options{BackfillDelay: time.Millisecond})

	loadCtx, cancel := context.WithTimeout(context.Background(), time.Millisecond)
	e.Load(loadCtx)
	e.Wait()
	cancel()
	<-loadCtx.Done()

	filled := e.Backfill(context.Background())
	e.Wait()

	s.Equal(4, filled)
	s.Len(s.fetcher.calls, 4)
}

// TestBackfillSuite runs the backfill test suite.
func TestBackfillSuite(t *testing.T) {
	suite.Run(t, new(BackfillTestSuite))
}

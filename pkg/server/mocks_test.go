package server

import (
	"context"
	"sync/atomic"
	"time"

	"figdash/pkg/cache"
	"figdash/pkg/config"
	"figdash/pkg/mirror"
	"figdash/pkg/models"
	"figdash/pkg/reconciler"
	"figdash/pkg/refstore"
)

// mockGateway implements Gateway with canned responses and an outbound call
// counter, so tests can assert that certain requests never leave the process.
type mockGateway struct {
	calls int64
	token string

	user       *models.User
	projects   []models.Project
	files      []models.RemoteFile
	detail     *models.FileDetail
	images     map[string]string
	teamFiles  []models.FileReference
	teamDetail *models.TeamDetail
	ref        *models.FileReference
	err        error
}

func (m *mockGateway) count() int64 {
	return atomic.LoadInt64(&m.calls)
}

func (m *mockGateway) Me(context.Context) (*models.User, error) {
	atomic.AddInt64(&m.calls, 1)
	return m.user, m.err
}

func (m *mockGateway) TeamProjects(context.Context, string) ([]models.Project, error) {
	atomic.AddInt64(&m.calls, 1)
	return m.projects, m.err
}

func (m *mockGateway) ProjectFiles(context.Context, string) ([]models.RemoteFile, error) {
	atomic.AddInt64(&m.calls, 1)
	return m.files, m.err
}

func (m *mockGateway) File(context.Context, string) (*models.FileDetail, error) {
	atomic.AddInt64(&m.calls, 1)
	return m.detail, m.err
}

func (m *mockGateway) FileImages(context.Context, string, string, float64) (map[string]string, error) {
	atomic.AddInt64(&m.calls, 1)
	return m.images, m.err
}

func (m *mockGateway) TeamFiles(context.Context, string) ([]models.FileReference, error) {
	atomic.AddInt64(&m.calls, 1)
	return m.teamFiles, m.err
}

func (m *mockGateway) TeamDetails(_ context.Context, teamID string) (*models.TeamDetail, error) {
	atomic.AddInt64(&m.calls, 1)
	if m.err != nil {
		return nil, m.err
	}
	if m.teamDetail != nil {
		return m.teamDetail, nil
	}
	return &models.TeamDetail{ID: teamID}, nil
}

func (m *mockGateway) VerifyFile(_ context.Context, key string) (*models.FileReference, error) {
	atomic.AddInt64(&m.calls, 1)
	if m.err != nil {
		return nil, m.err
	}
	if m.ref != nil {
		return m.ref, nil
	}
	return &models.FileReference{Key: key, Name: "Verified"}, nil
}

// newTestServer builds a fully wired server over in-process collaborators.
// The engine runs without a mirror file (nil mirror is a no-op store).
func newTestServer(cfg *config.Config, gw *mockGateway) *Server {
	store := refstore.New()
	engine := reconciler.New((*mirror.Mirror)(nil), store, nil, refstore.DefaultClientID, reconciler.Options{})
	s := New(cfg, cache.New(), store, engine, "test-v0.0.0")
	s.newGateway = func(token string) (Gateway, error) {
		gw.token = token
		return gw, nil
	}
	s.setupRoutes()
	return s
}

func userFixture() *models.User {
	return &models.User{ID: "u1", Email: "designer@example.com", Handle: "designer"}
}

func testConfig() *config.Config {
	return &config.Config{
		Port:             "8080",
		FigmaToken:       "test-token",
		FigmaAPIBase:     "http://remote.invalid/v1",
		TeamID:           "123456",
		RequestTimeout:   15 * time.Second,
		RetryMax:         2,
		AutoSyncInterval: time.Minute,
	}
}

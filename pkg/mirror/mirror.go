// Package mirror persists the curated file list on the local device so the
// dashboard has something to show before any network round trip. Every
// operation is best-effort: corruption or I/O failure degrades to an empty
// list or a no-op, never a crash.
package mirror

import (
	"database/sql"
	"fmt"
	"sync"

	_ "modernc.org/sqlite"

	"figdash/pkg/log"
	"figdash/pkg/models"
)

// Mirror is the device-local persistent copy of a reference list. A nil
// *Mirror is valid and behaves as an always-empty store.
type Mirror struct {
	db *sql.DB
	mu sync.RWMutex
}

// Open creates or opens the mirror database at path.
func Open(path string) (*Mirror, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open mirror database: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode = WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("enable WAL mode: %w", err)
	}

	if _, err := db.Exec(Schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("initialize mirror schema: %w", err)
	}

	return &Mirror{db: db}, nil
}

// Load returns the persisted list in display order. Any failure is logged
// and yields an empty list; the caller never has to handle an error.
func (m *Mirror) Load() []models.FileReference {
	if m == nil || m.db == nil {
		return nil
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	rows, err := m.db.Query(
		`SELECT key, name, thumbnail_url, last_modified, role, project_id, project_name, team_id, team_name
		 FROM file_references ORDER BY position`)
	if err != nil {
		log.Warn().Err(err).Msg("Mirror load failed, starting empty")
		return nil
	}
	defer func() { _ = rows.Close() }()

	var refs []models.FileReference
	for rows.Next() {
		var (
			ref       models.FileReference
			thumbnail sql.NullString
			modified  sql.NullString
			role      sql.NullString
			projectID sql.NullString
			project   sql.NullString
			teamID    sql.NullString
			teamName  sql.NullString
		)
		if err := rows.Scan(&ref.Key, &ref.Name, &thumbnail, &modified, &role, &projectID, &project, &teamID, &teamName); err != nil {
			log.Warn().Err(err).Msg("Mirror row scan failed, starting empty")
			return nil
		}
		ref.ThumbnailURL = thumbnail.String
		ref.LastModified = modified.String
		ref.Role = role.String
		ref.ProjectID = projectID.String
		ref.ProjectName = project.String
		ref.TeamID = teamID.String
		ref.TeamName = teamName.String
		refs = append(refs, ref)
	}

	if err := rows.Err(); err != nil {
		log.Warn().Err(err).Msg("Mirror load incomplete, starting empty")
		return nil
	}
	return refs
}

// Save replaces the persisted list with refs, keeping their order. Failures
// are logged; the in-memory state the caller holds stays authoritative.
func (m *Mirror) Save(refs []models.FileReference) {
	if m == nil || m.db == nil {
		return
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	tx, err := m.db.Begin()
	if err != nil {
		log.Warn().Err(err).Msg("Mirror save failed to begin transaction")
		return
	}

	if _, err := tx.Exec(`DELETE FROM file_references`); err != nil {
		log.Warn().Err(err).Msg("Mirror save failed to clear old list")
		_ = tx.Rollback()
		return
	}

	for position, ref := range refs {
		_, err := tx.Exec(
			`INSERT INTO file_references
			 (position, key, name, thumbnail_url, last_modified, role, project_id, project_name, team_id, team_name)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			position, ref.Key, ref.Name, ref.ThumbnailURL, ref.LastModified, ref.Role,
			ref.ProjectID, ref.ProjectName, ref.TeamID, ref.TeamName,
		)
		if err != nil {
			log.Warn().Err(err).Str("key", ref.Key).Msg("Mirror save failed to insert reference")
			_ = tx.Rollback()
			return
		}
	}

	if err := tx.Commit(); err != nil {
		log.Warn().Err(err).Msg("Mirror save failed to commit")
		return
	}
	log.Debug().Int("count", len(refs)).Msg("Mirror saved")
}

// Clear drops the persisted list.
func (m *Mirror) Clear() {
	if m == nil || m.db == nil {
		return
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, err := m.db.Exec(`DELETE FROM file_references`); err != nil {
		log.Warn().Err(err).Msg("Mirror clear failed")
	}
}

// Close closes the underlying database.
func (m *Mirror) Close() error {
	if m == nil || m.db == nil {
		return nil
	}
	return m.db.Close()
}

package mirror

// Schema contains the SQL statements to create the mirror database schema.
const Schema = `
-- file_references table: the device-local copy of the curated file list.
-- position preserves display order (0 = newest).
CREATE TABLE IF NOT EXISTS file_references (
    position      INTEGER NOT NULL,
    key           TEXT PRIMARY KEY,
    name          TEXT NOT NULL,
    thumbnail_url TEXT,
    last_modified TEXT,
    role          TEXT,
    project_id    TEXT,
    project_name  TEXT,
    team_id       TEXT,
    team_name     TEXT
);

CREATE INDEX IF NOT EXISTS idx_file_references_position ON file_references(position);
`

package models

// DefaultProjectName is the catch-all project label for references that were
// added by hand rather than discovered through a project listing.
const DefaultProjectName = "My Files"

// FileReference is one user-curated pointer to a remote design file. Key is
// the primary identity: a combined list never holds two references with the
// same key.
type FileReference struct {
	Key          string `json:"key"`
	Name         string `json:"name"`
	ThumbnailURL string `json:"thumbnail_url,omitempty"`
	LastModified string `json:"last_modified"`
	Role         string `json:"role"`
	ProjectID    string `json:"project_id,omitempty"`
	ProjectName  string `json:"project_name,omitempty"`
	TeamID       string `json:"team_id,omitempty"`
	TeamName     string `json:"team_name,omitempty"`
}

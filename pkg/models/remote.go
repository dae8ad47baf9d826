package models

// User is the remote service's current-user payload (/me).
type User struct {
	ID     string `json:"id"`
	Email  string `json:"email"`
	Handle string `json:"handle"`
	ImgURL string `json:"img_url"`
}

// Project is one project inside a team (/teams/{id}/projects).
type Project struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// RemoteFile is one file inside a project listing (/projects/{id}/files).
type RemoteFile struct {
	Key          string `json:"key"`
	Name         string `json:"name"`
	ThumbnailURL string `json:"thumbnail_url"`
	LastModified string `json:"last_modified"`
}

// FileDetail is the single-file payload (/files/{key}). Only the metadata the
// dashboard needs is decoded; the document tree is ignored.
type FileDetail struct {
	Name         string `json:"name"`
	ThumbnailURL string `json:"thumbnailUrl"`
	LastModified string `json:"lastModified"`
	Role         string `json:"role"`
	Version      string `json:"version"`
}

// TeamProjectsResponse wraps a team project listing.
type TeamProjectsResponse struct {
	Projects []Project `json:"projects"`
}

// ProjectFilesResponse wraps a project file listing.
type ProjectFilesResponse struct {
	Files []RemoteFile `json:"files"`
}

// ImagesResponse wraps a rendered-image response (/images/{key}).
type ImagesResponse struct {
	Err    string            `json:"err"`
	Images map[string]string `json:"images"`
}

// ProjectFileCount is one project's size inside a team summary.
type ProjectFileCount struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	FileCount int    `json:"file_count"`
}

// TeamDetail summarizes a team: its projects and how many files each holds.
// A project the token cannot list counts as zero files rather than failing
// the summary.
type TeamDetail struct {
	ID           string             `json:"id"`
	Name         string             `json:"name"`
	ProjectCount int                `json:"project_count"`
	TotalFiles   int                `json:"total_files"`
	Projects     []ProjectFileCount `json:"projects"`
	Error        string             `json:"error,omitempty"`
}

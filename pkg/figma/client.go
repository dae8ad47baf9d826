// Package figma wraps outbound calls to the remote design-file service. One
// Client carries one access token; non-success responses surface as APIError.
package figma

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/hashicorp/go-retryablehttp"

	"figdash/pkg/log"
	"figdash/pkg/models"
)

const tokenHeader = "X-Figma-Token"

// Client issues authenticated requests against the remote API.
type Client struct {
	baseURL string
	token   string
	client  *retryablehttp.Client
}

// NewClient creates a gateway client. The token is required; callers must
// refuse to proceed without one.
func NewClient(baseURL, token string, retryMax int, timeout time.Duration) (*Client, error) {
	if token == "" {
		return nil, ErrTokenMissing
	}

	client := retryablehttp.NewClient()
	client.RetryMax = retryMax
	client.Logger = nil // Disable retryablehttp logging
	client.HTTPClient.Timeout = timeout
	client.CheckRetry = retryPolicy

	return &Client{
		baseURL: baseURL,
		token:   token,
		client:  client,
	}, nil
}

// retryPolicy only retries on connection/timeout errors. Remote HTTP error
// statuses are forwarded to the caller as-is instead of being retried.
func retryPolicy(ctx context.Context, resp *http.Response, err error) (bool, error) {
	if ctx.Err() != nil {
		return false, ctx.Err()
	}
	if resp != nil {
		return false, nil
	}
	if err != nil {
		return true, nil //nolint:nilerr // retryablehttp reports the final error itself
	}
	return false, nil
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set(tokenHeader, c.token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("figma request failed: %w", err)
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			log.Warn().Err(closeErr).Str("path", path).Msg("Failed to close response body")
		}
	}()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return &APIError{StatusCode: resp.StatusCode, Status: resp.Status}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// Me fetches the current-user profile.
func (c *Client) Me(ctx context.Context) (*models.User, error) {
	var user models.User
	if err := c.get(ctx, "/me", &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// TeamProjects lists the projects of a team.
func (c *Client) TeamProjects(ctx context.Context, teamID string) ([]models.Project, error) {
	var resp models.TeamProjectsResponse
	if err := c.get(ctx, "/teams/"+url.PathEscape(teamID)+"/projects", &resp); err != nil {
		return nil, err
	}
	return resp.Projects, nil
}

// ProjectFiles lists the files of a project.
func (c *Client) ProjectFiles(ctx context.Context, projectID string) ([]models.RemoteFile, error) {
	var resp models.ProjectFilesResponse
	if err := c.get(ctx, "/projects/"+url.PathEscape(projectID)+"/files", &resp); err != nil {
		return nil, err
	}
	return resp.Files, nil
}

// File fetches a single file's metadata, including thumbnail URL and
// last-modified. Never cached; used for on-demand verification.
func (c *Client) File(ctx context.Context, key string) (*models.FileDetail, error) {
	var detail models.FileDetail
	if err := c.get(ctx, "/files/"+url.PathEscape(key), &detail); err != nil {
		return nil, err
	}
	return &detail, nil
}

// FileImages renders a file at the given format and scale.
func (c *Client) FileImages(ctx context.Context, key, format string, scale float64) (map[string]string, error) {
	params := url.Values{}
	params.Set("ids", key)
	if format != "" {
		params.Set("format", format)
	}
	if scale > 0 {
		params.Set("scale", strconv.FormatFloat(scale, 'f', -1, 64))
	}

	var resp models.ImagesResponse
	if err := c.get(ctx, "/images/"+url.PathEscape(key)+"?"+params.Encode(), &resp); err != nil {
		return nil, err
	}
	return resp.Images, nil
}

// VerifyFile confirms a file key is reachable with this token and returns a
// reference assembled from its live metadata.
func (c *Client) VerifyFile(ctx context.Context, key string) (*models.FileReference, error) {
	detail, err := c.File(ctx, key)
	if err != nil {
		return nil, err
	}
	return &models.FileReference{
		Key:          key,
		Name:         detail.Name,
		ThumbnailURL: detail.ThumbnailURL,
		LastModified: detail.LastModified,
		Role:         detail.Role,
	}, nil
}

// TeamDetails assembles per-project file counts for a team. A project that
// fails to list stays in the summary with zero files so one locked project
// does not hide the rest of the team.
func (c *Client) TeamDetails(ctx context.Context, teamID string) (*models.TeamDetail, error) {
	projects, err := c.TeamProjects(ctx, teamID)
	if err != nil {
		return nil, err
	}

	detail := &models.TeamDetail{
		ID:           teamID,
		ProjectCount: len(projects),
		Projects:     make([]models.ProjectFileCount, 0, len(projects)),
	}
	for _, project := range projects {
		count := 0
		files, err := c.ProjectFiles(ctx, project.ID)
		if err != nil {
			log.Warn().
				Err(err).
				Str("project_id", project.ID).
				Str("project_name", project.Name).
				Msg("Counting unreadable project as empty")
		} else {
			count = len(files)
		}
		detail.TotalFiles += count
		detail.Projects = append(detail.Projects, models.ProjectFileCount{
			ID:        project.ID,
			Name:      project.Name,
			FileCount: count,
		})
	}
	return detail, nil
}

// TeamFiles walks every project of a team and collects its files as
// references. A project that fails to list is logged and skipped so one bad
// project does not sink the whole pull.
func (c *Client) TeamFiles(ctx context.Context, teamID string) ([]models.FileReference, error) {
	projects, err := c.TeamProjects(ctx, teamID)
	if err != nil {
		return nil, err
	}

	refs := make([]models.FileReference, 0, len(projects))
	for _, project := range projects {
		files, err := c.ProjectFiles(ctx, project.ID)
		if err != nil {
			log.Warn().
				Err(err).
				Str("project_id", project.ID).
				Str("project_name", project.Name).
				Msg("Skipping project in team pull")
			continue
		}
		for _, file := range files {
			refs = append(refs, models.FileReference{
				Key:          file.Key,
				Name:         file.Name,
				ThumbnailURL: file.ThumbnailURL,
				LastModified: file.LastModified,
				Role:         "viewer",
				ProjectID:    project.ID,
				ProjectName:  project.Name,
				TeamID:       teamID,
			})
		}
	}

	log.Debug().Int("count", len(refs)).Str("team_id", teamID).Msg("Team pull collected files")
	return refs, nil
}

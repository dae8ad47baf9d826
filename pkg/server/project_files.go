package server

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"figdash/pkg/cache"
	"figdash/pkg/models"
)

type projectFilesResponse struct {
	Files     []models.RemoteFile `json:"files"`
	ProjectID string              `json:"project_id"`
	Cached    bool                `json:"cached"`
}

// getProjectFiles handles GET /api/figma/files requests.
func (s *Server) getProjectFiles(ctx echo.Context) error {
	projectID := ctx.QueryParam("project_id")
	if projectID == "" {
		return jsonError(ctx, http.StatusBadRequest, "project_id is required")
	}

	key := cache.KeyFiles(projectID)
	if files, ok := cache.Lookup[[]models.RemoteFile](s.cache, key); ok {
		return ctx.JSON(http.StatusOK, projectFilesResponse{Files: files, ProjectID: projectID, Cached: true})
	}

	gw, err := s.gateway(ctx)
	if err != nil {
		return gatewayError(ctx, err, "project")
	}

	files, err := gw.ProjectFiles(ctx.Request().Context(), projectID)
	if err != nil {
		return gatewayError(ctx, err, "project")
	}

	s.cache.Set(key, files, cache.FilesTTL)
	return ctx.JSON(http.StatusOK, projectFilesResponse{Files: files, ProjectID: projectID})
}

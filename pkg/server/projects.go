package server

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"figdash/pkg/cache"
	"figdash/pkg/models"
)

type projectsResponse struct {
	Projects []models.Project `json:"projects"`
	TeamID   string           `json:"team_id"`
	Cached   bool             `json:"cached"`
}

// getProjects handles GET /api/figma/projects requests.
func (s *Server) getProjects(ctx echo.Context) error {
	teamID := ctx.QueryParam("team_id")
	if teamID == "" {
		teamID = s.cfg.TeamID
	}
	if teamID == "" {
		return jsonError(ctx, http.StatusBadRequest, "team_id is required")
	}

	key := cache.KeyProjects(teamID)
	if projects, ok := cache.Lookup[[]models.Project](s.cache, key); ok {
		return ctx.JSON(http.StatusOK, projectsResponse{Projects: projects, TeamID: teamID, Cached: true})
	}

	gw, err := s.gateway(ctx)
	if err != nil {
		return gatewayError(ctx, err, "team")
	}

	projects, err := gw.TeamProjects(ctx.Request().Context(), teamID)
	if err != nil {
		return gatewayError(ctx, err, "team")
	}

	s.cache.Set(key, projects, cache.ProjectsTTL)
	return ctx.JSON(http.StatusOK, projectsResponse{Projects: projects, TeamID: teamID})
}

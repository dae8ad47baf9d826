package server

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"figdash/pkg/cache"
	"figdash/pkg/figma"
	"figdash/pkg/log"
	"figdash/pkg/models"
)

type teamRequest struct {
	TeamID  string `json:"team_id"`
	TeamURL string `json:"team_url"`
}

type teamResponse struct {
	Files  []models.FileReference `json:"files"`
	Count  int                    `json:"count"`
	TeamID string                 `json:"team_id"`
}

// pullTeam handles POST /api/figma/team requests: a bulk pull of every file
// in every project of a team, by id or by pasted team URL.
func (s *Server) pullTeam(ctx echo.Context) error {
	var req teamRequest
	if err := ctx.Bind(&req); err != nil {
		return jsonError(ctx, http.StatusBadRequest, "invalid request body")
	}

	teamID := req.TeamID
	if teamID == "" && req.TeamURL != "" {
		extracted, ok := figma.ExtractTeamID(req.TeamURL)
		if !ok {
			return jsonError(ctx, http.StatusBadRequest, "could not extract a team id from the given URL")
		}
		teamID = extracted
	}
	if teamID == "" {
		return jsonError(ctx, http.StatusBadRequest, "team_id or team_url is required")
	}

	gw, err := s.gateway(ctx)
	if err != nil {
		return gatewayError(ctx, err, "team")
	}

	files, err := gw.TeamFiles(ctx.Request().Context(), teamID)
	if err != nil {
		return gatewayError(ctx, err, "team")
	}

	s.cache.Set(cache.KeyTeamFiles(teamID), files, cache.FilesTTL)
	log.Info().Str("team_id", teamID).Int("count", len(files)).Msg("Team pull complete")
	return ctx.JSON(http.StatusOK, teamResponse{Files: files, Count: len(files), TeamID: teamID})
}

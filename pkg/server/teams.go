package server

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"figdash/pkg/log"
	"figdash/pkg/models"
)

type teamsResponse struct {
	Teams      []models.TeamDetail `json:"teams"`
	TotalTeams int                 `json:"total_teams"`
}

// discoverTeams handles GET /api/figma/teams requests: per-project file
// counts for each known team. The remote API has no way to enumerate a
// user's teams, so the set is the team_id query parameter or the configured
// team. A team whose details cannot be fetched stays in the response with
// zero counts and an error note instead of sinking the whole discovery.
func (s *Server) discoverTeams(ctx echo.Context) error {
	gw, err := s.gateway(ctx)
	if err != nil {
		return gatewayError(ctx, err, "teams")
	}

	var teamIDs []string
	if teamID := ctx.QueryParam("team_id"); teamID != "" {
		teamIDs = append(teamIDs, teamID)
	} else if s.cfg.TeamID != "" {
		teamIDs = append(teamIDs, s.cfg.TeamID)
	}

	teams := make([]models.TeamDetail, 0, len(teamIDs))
	for _, teamID := range teamIDs {
		detail, err := gw.TeamDetails(ctx.Request().Context(), teamID)
		if err != nil {
			log.Warn().Err(err).Str("team_id", teamID).Msg("Team details unavailable")
			teams = append(teams, models.TeamDetail{
				ID:       teamID,
				Projects: []models.ProjectFileCount{},
				Error:    "could not access team details",
			})
			continue
		}
		teams = append(teams, *detail)
	}

	return ctx.JSON(http.StatusOK, teamsResponse{Teams: teams, TotalTeams: len(teams)})
}

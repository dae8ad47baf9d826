package server

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"figdash/pkg/cache"
	"figdash/pkg/models"
	"figdash/pkg/reconciler"
	"figdash/pkg/refstore"
)

type draftsResponse struct {
	Files []models.FileReference `json:"files"`
	Count int                    `json:"count"`
	Query string                 `json:"query,omitempty"`
}

// getDrafts handles GET /api/figma/drafts requests: the caller's curated
// references merged with files discovered in the configured team, optionally
// filtered by a case-insensitive name query.
func (s *Server) getDrafts(ctx echo.Context) error {
	clientID := refstore.DeriveClientID(ctx.Request().Header)
	curated, err := s.store.List(ctx.Request().Context(), clientID)
	if err != nil {
		return jsonError(ctx, http.StatusInternalServerError, "reference store unavailable")
	}

	discovered, err := s.discoverTeamFiles(ctx)
	if err != nil {
		return gatewayError(ctx, err, "team")
	}

	merged := reconciler.MergeDiscovered(curated, discovered)

	query := strings.TrimSpace(ctx.QueryParam("q"))
	if query != "" {
		lower := strings.ToLower(query)
		filtered := merged[:0]
		for _, ref := range merged {
			if strings.Contains(strings.ToLower(ref.Name), lower) {
				filtered = append(filtered, ref)
			}
		}
		merged = filtered
	}

	return ctx.JSON(http.StatusOK, draftsResponse{Files: merged, Count: len(merged), Query: query})
}

// discoverTeamFiles pulls the configured team's files, cached. Without a team
// or a token there is nothing to discover; the curated list stands alone.
func (s *Server) discoverTeamFiles(ctx echo.Context) ([]models.FileReference, error) {
	teamID := s.cfg.TeamID
	if teamID == "" {
		return nil, nil
	}

	key := cache.KeyTeamFiles(teamID)
	if files, ok := cache.Lookup[[]models.FileReference](s.cache, key); ok {
		return files, nil
	}

	gw, err := s.gateway(ctx)
	if err != nil {
		return nil, nil
	}

	files, err := gw.TeamFiles(ctx.Request().Context(), teamID)
	if err != nil {
		return nil, err
	}

	s.cache.Set(key, files, cache.FilesTTL)
	return files, nil
}

package server

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// getServerToken handles GET /api/figma/server-token requests: whether a
// server-side access token is configured, so clients know if they must
// supply their own. The token itself is never echoed.
func (s *Server) getServerToken(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, map[string]bool{"has_server_token": s.cfg.HasToken()})
}

package server

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"figdash/pkg/cache"
	"figdash/pkg/log"
	"figdash/pkg/models"
)

// getUser handles GET /api/figma/user requests. Token resolution runs before
// the cache read so a tokenless caller gets the same 401 as everywhere else
// instead of another caller's cached profile.
func (s *Server) getUser(ctx echo.Context) error {
	gw, err := s.gateway(ctx)
	if err != nil {
		return gatewayError(ctx, err, "user")
	}

	if user, ok := cache.Lookup[*models.User](s.cache, cache.KeyUser); ok {
		return ctx.JSON(http.StatusOK, user)
	}

	user, err := gw.Me(ctx.Request().Context())
	if err != nil {
		return gatewayError(ctx, err, "user")
	}

	s.cache.Set(cache.KeyUser, user, cache.UserTTL)
	log.Debug().Str("handle", user.Handle).Msg("User profile fetched")
	return ctx.JSON(http.StatusOK, user)
}

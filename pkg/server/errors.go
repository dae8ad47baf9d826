package server

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"figdash/pkg/figma"
	"figdash/pkg/log"
)

type errorBody struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

func jsonError(ctx echo.Context, status int, msg string) error {
	return ctx.JSON(status, errorBody{Error: msg})
}

// gatewayError maps outbound failures onto the route's response: missing
// token 401, forbidden 403, unknown resource 404, anything else 500 with the
// detail logged rather than leaked.
func gatewayError(ctx echo.Context, err error, what string) error {
	switch {
	case errors.Is(err, figma.ErrTokenMissing):
		return jsonError(ctx, http.StatusUnauthorized, "figma access token not configured")
	case figma.IsForbidden(err):
		return jsonError(ctx, http.StatusForbidden, what+" not accessible with this token")
	case figma.IsNotFound(err):
		return jsonError(ctx, http.StatusNotFound, what+" not found")
	default:
		log.Error().Err(err).Str("what", what).Msg("Remote API request failed")
		return jsonError(ctx, http.StatusInternalServerError, "remote API request failed")
	}
}

package server

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"figdash/pkg/figma"
	"figdash/pkg/models"
)

type verifyRequest struct {
	URL string `json:"url" validate:"required"`
}

type verifyResponse struct {
	File *models.FileReference `json:"file"`
	Key  string                `json:"key"`
}

// verifyFile handles POST /api/figma/verify requests: extract a file key from
// a pasted URL and confirm the file is reachable with the active token.
// Results are never cached; verification must see the live remote state.
func (s *Server) verifyFile(ctx echo.Context) error {
	var req verifyRequest
	if err := ctx.Bind(&req); err != nil {
		return jsonError(ctx, http.StatusBadRequest, "invalid request body")
	}
	if err := s.validate.Struct(&req); err != nil {
		return jsonError(ctx, http.StatusBadRequest, "url is required")
	}

	key, ok := figma.ExtractFileKey(req.URL)
	if !ok {
		return jsonError(ctx, http.StatusBadRequest, "could not extract a file key from the given URL")
	}

	gw, err := s.gateway(ctx)
	if err != nil {
		return gatewayError(ctx, err, "file")
	}

	ref, err := gw.VerifyFile(ctx.Request().Context(), key)
	if err != nil {
		return gatewayError(ctx, err, "file")
	}

	return ctx.JSON(http.StatusOK, verifyResponse{File: ref, Key: key})
}

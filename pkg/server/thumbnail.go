package server

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

type thumbnailRequest struct {
	Key string `json:"key" validate:"required"`
}

type thumbnailResponse struct {
	Key          string `json:"key"`
	ThumbnailURL string `json:"thumbnail_url"`
}

// getThumbnail handles POST /api/figma/thumbnail requests. Always a live
// fetch; thumbnail URLs expire on the remote side so caching them serves
// broken images.
func (s *Server) getThumbnail(ctx echo.Context) error {
	var req thumbnailRequest
	if err := ctx.Bind(&req); err != nil {
		return jsonError(ctx, http.StatusBadRequest, "invalid request body")
	}
	if err := s.validate.Struct(&req); err != nil {
		return jsonError(ctx, http.StatusBadRequest, "key is required")
	}

	gw, err := s.gateway(ctx)
	if err != nil {
		return gatewayError(ctx, err, "file")
	}

	detail, err := gw.File(ctx.Request().Context(), req.Key)
	if err != nil {
		return gatewayError(ctx, err, "file")
	}

	return ctx.JSON(http.StatusOK, thumbnailResponse{Key: req.Key, ThumbnailURL: detail.ThumbnailURL})
}

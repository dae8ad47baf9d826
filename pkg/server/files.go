package server

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"figdash/pkg/figma"
	"figdash/pkg/models"
)

type addFileRequest struct {
	URL string `json:"url" validate:"required"`
}

type addFileResponse struct {
	Added bool                  `json:"added"`
	File  *models.FileReference `json:"file,omitempty"`
}

type autoSyncRequest struct {
	Enabled *bool `json:"enabled" validate:"required"`
}

// getFiles handles GET /api/files requests: the engine's combined working set
// with its loading, syncing and sync-log state.
func (s *Server) getFiles(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, s.engine.State())
}

// addFile handles POST /api/files requests: verify a pasted URL against the
// remote API, then add the resulting reference locally first.
func (s *Server) addFile(ctx echo.Context) error {
	var req addFileRequest
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

	added := s.engine.Add(*ref)
	resp := addFileResponse{Added: added}
	if added {
		resp.File = ref
	}
	return ctx.JSON(http.StatusOK, resp)
}

// removeFile handles DELETE /api/files/:key requests.
func (s *Server) removeFile(ctx echo.Context) error {
	key := ctx.Param("key")
	if key == "" {
		return jsonError(ctx, http.StatusBadRequest, "key is required")
	}
	return ctx.JSON(http.StatusOK, map[string]bool{"removed": s.engine.Remove(key)})
}

// clearFiles handles DELETE /api/files requests.
func (s *Server) clearFiles(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, map[string]int{"count": s.engine.Clear()})
}

// syncFiles handles POST /api/files/sync requests: a foreground refresh from
// the server-side store.
func (s *Server) syncFiles(ctx echo.Context) error {
	if err := s.engine.SyncNow(ctx.Request().Context()); err != nil {
		return jsonError(ctx, http.StatusInternalServerError, "sync failed")
	}
	return ctx.JSON(http.StatusOK, s.engine.State())
}

// setAutoSync handles POST /api/files/autosync requests.
func (s *Server) setAutoSync(ctx echo.Context) error {
	var req autoSyncRequest
	if err := ctx.Bind(&req); err != nil {
		return jsonError(ctx, http.StatusBadRequest, "invalid request body")
	}
	if err := s.validate.Struct(&req); err != nil {
		return jsonError(ctx, http.StatusBadRequest, "enabled is required")
	}

	if *req.Enabled {
		s.engine.StartAutoSync(s.cfg.AutoSyncInterval)
	} else {
		s.engine.StopAutoSync()
	}
	return ctx.JSON(http.StatusOK, map[string]bool{"auto_sync": s.engine.AutoSyncRunning()})
}

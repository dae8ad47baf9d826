package server

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"figdash/pkg/models"
	"figdash/pkg/refstore"
)

type userDraftsRequest struct {
	Action string                `json:"action" validate:"required,oneof=add remove clear"`
	File   *models.FileReference `json:"file"`
	Key    string                `json:"key"`
}

type userDraftsResponse struct {
	Files []models.FileReference `json:"files,omitempty"`
	Count int                    `json:"count"`
}

// listUserDrafts handles GET /api/figma/user-drafts requests.
func (s *Server) listUserDrafts(ctx echo.Context) error {
	clientID := refstore.DeriveClientID(ctx.Request().Header)
	files, err := s.store.List(ctx.Request().Context(), clientID)
	if err != nil {
		return jsonError(ctx, http.StatusInternalServerError, "reference store unavailable")
	}
	return ctx.JSON(http.StatusOK, userDraftsResponse{Files: files, Count: len(files)})
}

// mutateUserDrafts handles POST /api/figma/user-drafts requests. The action
// field selects add, remove or clear; outcomes report at 200 regardless so
// callers distinguish "not present" from transport failure.
func (s *Server) mutateUserDrafts(ctx echo.Context) error {
	var req userDraftsRequest
	if err := ctx.Bind(&req); err != nil {
		return jsonError(ctx, http.StatusBadRequest, "invalid request body")
	}
	if err := s.validate.Struct(&req); err != nil {
		return jsonError(ctx, http.StatusBadRequest, "action must be one of add, remove, clear")
	}

	clientID := refstore.DeriveClientID(ctx.Request().Header)
	reqCtx := ctx.Request().Context()

	switch req.Action {
	case "add":
		if req.File == nil || req.File.Key == "" {
			return jsonError(ctx, http.StatusBadRequest, "file with a key is required for add")
		}
		added, err := s.store.Add(reqCtx, clientID, *req.File)
		if err != nil {
			return jsonError(ctx, http.StatusInternalServerError, "reference store unavailable")
		}
		return ctx.JSON(http.StatusOK, map[string]bool{"added": added})

	case "remove":
		if req.Key == "" {
			return jsonError(ctx, http.StatusBadRequest, "key is required for remove")
		}
		removed, err := s.store.Remove(reqCtx, clientID, req.Key)
		if err != nil {
			return jsonError(ctx, http.StatusInternalServerError, "reference store unavailable")
		}
		return ctx.JSON(http.StatusOK, map[string]bool{"removed": removed})

	default: // clear, guaranteed by validation
		count, err := s.store.Clear(reqCtx, clientID)
		if err != nil {
			return jsonError(ctx, http.StatusInternalServerError, "reference store unavailable")
		}
		return ctx.JSON(http.StatusOK, map[string]int{"count": count})
	}
}

// clearUserDrafts handles DELETE /api/figma/user-drafts requests.
func (s *Server) clearUserDrafts(ctx echo.Context) error {
	clientID := refstore.DeriveClientID(ctx.Request().Header)
	count, err := s.store.Clear(ctx.Request().Context(), clientID)
	if err != nil {
		return jsonError(ctx, http.StatusInternalServerError, "reference store unavailable")
	}
	return ctx.JSON(http.StatusOK, map[string]int{"count": count})
}

package httpapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

type addClipboardRequest struct {
	Content  string `json:"content" form:"content"`
	IsPublic bool   `json:"is_public" form:"is_public"`
}

func (s *Server) listClipboard(c echo.Context) error {
	items, err := s.services.Clipboard.ListVisibleTo(c.Request().Context(), usernameFrom(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]any{"clipboard_items": items})
}

func (s *Server) addClipboardItem(c echo.Context) error {
	var req addClipboardRequest
	if err := c.Bind(&req); err != nil {
		return errBadRequest
	}
	if req.Content == "" {
		return errEmptyContent
	}

	item, err := s.services.Clipboard.Add(c.Request().Context(), req.Content, usernameFrom(c), req.IsPublic)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, item)
}

// getClipboardItem answers with the raw content so it can be fetched
// directly by scripts.
func (s *Server) getClipboardItem(c echo.Context) error {
	item, err := s.services.Clipboard.GetVisibleTo(c.Request().Context(), c.Param("id"), usernameFrom(c))
	if err != nil {
		return err
	}
	return c.String(http.StatusOK, item.Content)
}

func (s *Server) getPublicClipboardItem(c echo.Context) error {
	item, err := s.services.Clipboard.GetPublic(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.String(http.StatusOK, item.Content)
}

func (s *Server) deleteClipboardItem(c echo.Context) error {
	if err := s.services.Clipboard.DeleteOwned(c.Request().Context(), c.Param("id"), usernameFrom(c)); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

package httpapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

type createPersonalRequest struct {
	Name    string `json:"name" form:"name"`
	Content string `json:"content" form:"content"`
}

type updatePersonalRequest struct {
	Content string `json:"content" form:"content"`
}

func (s *Server) listPersonal(c echo.Context) error {
	list, err := s.services.Personal.ListByCreator(c.Request().Context(), usernameFrom(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]any{"personal_clipboards": list})
}

func (s *Server) createPersonal(c echo.Context) error {
	var req createPersonalRequest
	if err := c.Bind(&req); err != nil {
		return errBadRequest
	}

	pc, err := s.services.Personal.Create(c.Request().Context(), req.Name, req.Content, usernameFrom(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, pc)
}

func (s *Server) getPersonal(c echo.Context) error {
	pc, err := s.services.Personal.GetOwned(c.Request().Context(), c.Param("id"), usernameFrom(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, pc)
}

func (s *Server) updatePersonal(c echo.Context) error {
	var req updatePersonalRequest
	if err := c.Bind(&req); err != nil {
		return errBadRequest
	}

	pc, err := s.services.Personal.UpdateContent(c.Request().Context(), c.Param("id"), req.Content, usernameFrom(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, pc)
}

func (s *Server) deletePersonal(c echo.Context) error {
	if err := s.services.Personal.DeleteOwned(c.Request().Context(), c.Param("id"), usernameFrom(c)); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

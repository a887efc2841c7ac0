package httpapi

import (
	"strings"
	"time"

	"github.com/dmitrijs2005/filekeeper/internal/common"
	"github.com/dmitrijs2005/filekeeper/internal/server/auth"
	"github.com/labstack/echo/v4"
)

const usernameKey = "username"

// accessTokenMiddleware requires a valid "Authorization: Bearer <jwt>"
// header and stores the token subject for the handlers.
func (s *Server) accessTokenMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		header := c.Request().Header.Get(common.AuthorizationHeaderName)
		scheme, token, ok := strings.Cut(header, " ")
		if !ok || !strings.EqualFold(scheme, "Bearer") || token == "" {
			return common.ErrorUnauthorized
		}

		username, err := auth.GetUsernameFromToken(strings.TrimSpace(token), s.jwtSecret)
		if err != nil {
			return err
		}

		c.Set(usernameKey, username)
		return next(c)
	}
}

func usernameFrom(c echo.Context) string {
	u, _ := c.Get(usernameKey).(string)
	return u
}

func (s *Server) requestLogger(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := time.Now()
		err := next(c)
		if err != nil {
			// Renders the response so the logged status is final.
			c.Error(err)
		}

		req := c.Request()
		s.logger.Info(req.Context(), "request",
			"method", req.Method,
			"path", req.URL.Path,
			"status", c.Response().Status,
			"duration", time.Since(start),
			"user", usernameFrom(c),
		)
		return nil
	}
}

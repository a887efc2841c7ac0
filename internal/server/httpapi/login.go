package httpapi

import (
	"net/http"

	"github.com/dmitrijs2005/filekeeper/internal/server/auth"
	"github.com/labstack/echo/v4"
)

type loginRequest struct {
	Username string `json:"username" form:"username"`
	Password string `json:"password" form:"password"`
}

type loginResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
}

func (s *Server) login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return errBadRequest
	}

	ctx := c.Request().Context()
	if !s.services.Credentials.Verify(req.Username, req.Password) {
		s.logger.Warn(ctx, "login failed", "username", req.Username, "remote", c.RealIP())
		return errBadLogin
	}

	token, err := auth.GenerateToken(req.Username, s.jwtSecret, s.tokenValidity)
	if err != nil {
		return err
	}

	s.logger.Info(ctx, "login succeeded", "username", req.Username)
	return c.JSON(http.StatusOK, loginResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   int64(s.tokenValidity.Seconds()),
	})
}

package httpapi

import (
	"errors"
	"io"
	"net/http"

	"github.com/dmitrijs2005/filekeeper/internal/common"
	"github.com/dmitrijs2005/filekeeper/internal/server/personal"
	"github.com/labstack/echo/v4"
)

var (
	errNoFiles      = errors.New("no file selected")
	errEmptyContent = errors.New("content is required")
	errBadRequest   = errors.New("malformed request")
	errStorageFull  = errors.New("storage is full, delete some files before uploading")
	errBadLogin     = errors.New("invalid username or password")
)

type errorResponse struct {
	Error string `json:"error"`
}

// statusFor maps an error to the HTTP status and the message shown to the
// client. Storage failures never expose filesystem detail.
func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, common.ErrorNotFound):
		return http.StatusNotFound, "not found"
	case errors.Is(err, errBadLogin):
		return http.StatusUnauthorized, err.Error()
	case errors.Is(err, common.ErrorUnauthorized),
		errors.Is(err, common.ErrInvalidToken):
		return http.StatusUnauthorized, "unauthorized"
	case errors.Is(err, common.ErrTokenExpired):
		return http.StatusUnauthorized, common.ErrTokenExpired.Error()
	case errors.Is(err, common.ErrUnsafeName),
		errors.Is(err, errNoFiles),
		errors.Is(err, errEmptyContent),
		errors.Is(err, errBadRequest),
		errors.Is(err, personal.ErrEmptyName),
		errors.Is(err, io.ErrUnexpectedEOF):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, common.ErrDisallowedType):
		return http.StatusUnsupportedMediaType, err.Error()
	case errors.Is(err, common.ErrQuotaExceeded), errors.Is(err, errStorageFull):
		return http.StatusInsufficientStorage, err.Error()
	case errors.Is(err, common.ErrContentTooLarge):
		return http.StatusRequestEntityTooLarge, err.Error()
	case errors.Is(err, common.ErrPreviewUnavailable):
		return http.StatusUnprocessableEntity, err.Error()
	}
	return http.StatusInternalServerError, "internal error"
}

func (s *Server) errorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	var he *echo.HTTPError
	if errors.As(err, &he) {
		msg := http.StatusText(he.Code)
		if m, ok := he.Message.(string); ok {
			msg = m
		}
		_ = c.JSON(he.Code, errorResponse{Error: msg})
		return
	}

	status, msg := statusFor(err)
	if status == http.StatusInternalServerError {
		s.logger.Error(c.Request().Context(), "request failed", "path", c.Request().URL.Path, "error", err)
	}
	_ = c.JSON(status, errorResponse{Error: msg})
}

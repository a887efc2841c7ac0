// Package common defines shared constants and sentinel errors used across
// filekeeper components. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors. ErrorNotFound also covers records that exist
	// but are not visible to the caller.
	ErrorNotFound = errors.New("not found")

	// Service-level errors (generic/internal flow control).
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")

	// File policy rejections.
	ErrUnsafeName      = errors.New("unsafe file name")
	ErrDisallowedType  = errors.New("file type not allowed")
	ErrQuotaExceeded   = errors.New("storage quota exceeded")
	ErrContentTooLarge = errors.New("content too large")

	// ErrPreviewUnavailable is non-fatal: the file stays downloadable.
	ErrPreviewUnavailable = errors.New("preview unavailable")

	// ErrStorageIO wraps underlying disk failures.
	ErrStorageIO = errors.New("storage i/o error")

	// Auth errors (invalid or malformed token).
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
)

package common

// AuthorizationHeaderName carries "Bearer <token>" on API requests.
const AuthorizationHeaderName = "Authorization"

// Size units.
const (
	KiB int64 = 1024
	MiB       = 1024 * KiB
	GiB       = 1024 * MiB
)

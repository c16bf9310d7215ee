package access

import "errors"

var (
	// ErrNotFound covers absent and soft-deleted shares alike; public callers
	// must not be able to tell the two apart.
	ErrNotFound = errors.New("share not found")

	// ErrLinkExpired is surfaced with the same status as ErrNotFound on
	// public routes; only the message differs.
	ErrLinkExpired = errors.New("this link has expired")

	ErrPermissionDenied = errors.New("permission denied")
)

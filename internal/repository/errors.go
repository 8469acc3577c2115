package repository

import "errors"

// ErrNotFound is returned when a conversation does not exist. The service
// layer translates it into app_errors.ErrNotFound so callers never see
// sql.ErrNoRows or redis.Nil.
var ErrNotFound = errors.New("repository: not found")

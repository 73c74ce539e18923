package service

import "errors"

// Domain errors surfaced to the handler layer, which maps them to HTTP
// statuses.
var (
	ErrNotFound           = errors.New("not found")
	ErrCommentNotFound    = errors.New("comment not found")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrNotAuthorized      = errors.New("not authorized")
)

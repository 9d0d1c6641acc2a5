package user

import "errors"

var (
	ErrRequesterMissing        = errors.New("requester identity is missing")
	ErrInvalidRole             = errors.New("invalid role")
	ErrInsufficientPermissions = errors.New("insufficient permissions")
	ErrCannotManageTarget      = errors.New("requester role cannot manage target role")
)

package link

import (
	"errors"
)

var (
	// ErrInvalidLink means the URL is not a valid secret link.
	ErrInvalidLink = errors.New("invalid secret link")

	// ErrEncode is wrapped by every error returned from Encode.
	ErrEncode           = errors.New("cannot build secret link")
	ErrEmptyDomain      = errors.New("empty domain")
	ErrEmptyID          = errors.New("empty record id")
	ErrEmptyPassword    = errors.New("empty password")
	ErrSeparatorInField = errors.New("record id and password must not contain the separator")
	ErrInvalidUTF8      = errors.New("link fields must be valid UTF-8")
)

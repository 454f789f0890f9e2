package core

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyContent is returned when an email has no body and no attachments
	ErrEmptyContent = errors.New("email has no content")
	// ErrMalformedDate is reported when a Date header cannot be parsed
	ErrMalformedDate = errors.New("unparseable date header")
	// ErrCacheMiss is returned when no analysis is cached under a fingerprint
	ErrCacheMiss = errors.New("analysis not found in cache")
)

// UnsupportedFormatError is returned when a file extension is not recognized
type UnsupportedFormatError struct {
	Ext string
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("unsupported email format: %q", e.Ext)
}

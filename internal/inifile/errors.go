package inifile

import "errors"

var (
	// ErrInvalidEncoding is returned when the file content is not valid UTF-8.
	ErrInvalidEncoding = errors.New("config file is not valid UTF-8")

	// ErrDuplicateSection is returned when a section header is declared more
	// than once, or when a header collides with the synthetic top section.
	ErrDuplicateSection = errors.New("duplicate section header")
)

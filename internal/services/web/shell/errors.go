package shell

import "errors"

var (
	// ErrInvalidPageComponent is returned when the selected page is not renderable.
	ErrInvalidPageComponent = errors.New("shell: invalid page component")
	// ErrMalformedProps is returned when page props are not a string-keyed mapping.
	ErrMalformedProps = errors.New("shell: malformed page props")
)

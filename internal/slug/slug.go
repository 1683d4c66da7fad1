// Package slug validates the title slugs the problem archive uses as lookup keys.
package slug

import (
	"errors"
	"fmt"
	"regexp"
)

var (
	// ErrEmpty is returned when a slug is empty.
	ErrEmpty = errors.New("slug must not be empty")

	// ErrFormat is returned when a slug does not match the required pattern.
	ErrFormat = errors.New("slug must contain only lowercase alphanumeric characters and hyphens, and must not start or end with a hyphen")

	// pattern matches a single lowercase alphanumeric character or a string
	// of lowercase alphanumeric characters and hyphens that does not start or
	// end with a hyphen.
	pattern = regexp.MustCompile(`^[a-z0-9]([a-z0-9\-]*[a-z0-9])?$`)
)

// maxLen bounds slugs well above anything the archive issues.
const maxLen = 200

// Validate checks that s is a well-formed title slug.
func Validate(s string) error {
	if s == "" {
		return ErrEmpty
	}
	if len(s) > maxLen || !pattern.MatchString(s) {
		return fmt.Errorf("%w: %q", ErrFormat, s)
	}
	return nil
}

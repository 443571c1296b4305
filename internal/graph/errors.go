package graph

import (
	"errors"
	"fmt"
)

// ErrInvalidArgument marks caller mistakes: blank names, too few path segments,
// unsupported link options.
var ErrInvalidArgument = errors.New("invalid argument")

// NotFoundError reports the first path segment that matched nothing.
type NotFoundError struct {
	Kind string // "notebook", "section group", "section" or "page"
	Name string
	Path string
}

func (e *NotFoundError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("%s %q not found", e.Kind, e.Name)
	}
	return fmt.Sprintf("%s %q not found in path %q", e.Kind, e.Name, e.Path)
}

func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

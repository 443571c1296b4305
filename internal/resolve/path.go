package resolve

import (
	"fmt"
	"strings"

	"github.com/gebl/onenote-connector/internal/graph"
)

// Separator delimits segments in the string form of a Path.
const Separator = "/"

// Path is an ordered list of display names below a notebook, for example
// {"Journal", "2022", "2022-05", "2022-05-05"}. Segments are opaque: a name may
// contain any character, including the separator.
type Path []string

// ParsePath splits a slash-delimited path. Surrounding whitespace and slashes
// are ignored; empty or blank segments are rejected. Names that contain a
// slash cannot be expressed this way and need a Path built directly.
func ParsePath(raw string) (Path, error) {
	trimmed := strings.Trim(strings.TrimSpace(raw), Separator)
	if trimmed == "" {
		return nil, fmt.Errorf("%w: path is empty", graph.ErrInvalidArgument)
	}

	segments := strings.Split(trimmed, Separator)
	for i, s := range segments {
		if strings.TrimSpace(s) == "" {
			return nil, fmt.Errorf("%w: path %q has an empty segment at position %d", graph.ErrInvalidArgument, raw, i+1)
		}
	}
	return Path(segments), nil
}

// String joins the segments with Separator.
func (p Path) String() string {
	return strings.Join(p, Separator)
}

// CheckSection reports whether p can name a section: one or more non-blank segments.
func (p Path) CheckSection() error { return p.validate(1, "section") }

// CheckPage reports whether p can name a page: a section path plus a title.
func (p Path) CheckPage() error { return p.validate(2, "page") }

// validate checks that p has at least min segments and none of them is blank.
func (p Path) validate(min int, what string) error {
	if len(p) < min {
		return fmt.Errorf("%w: %s path needs at least %d segment(s), got %d", graph.ErrInvalidArgument, what, min, len(p))
	}
	for i, s := range p {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%w: %s path segment %d is blank", graph.ErrInvalidArgument, what, i+1)
		}
	}
	return nil
}

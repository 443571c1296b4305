package sharing

import (
	"fmt"
	"strings"

	"github.com/gebl/onenote-connector/internal/graph"
)

// LinkType is the kind of access a share link grants.
type LinkType string

const (
	LinkView  LinkType = "view"
	LinkEdit  LinkType = "edit"
	LinkEmbed LinkType = "embed"
)

// Scope is the audience a share link is valid for.
type Scope string

const (
	ScopeAnonymous    Scope = "anonymous"
	ScopeOrganization Scope = "organization"
	ScopeUsers        Scope = "users"
)

const (
	DefaultLinkType = LinkView
	DefaultScope    = ScopeAnonymous
)

// ParseLinkType accepts a link type in any case. Empty means DefaultLinkType.
func ParseLinkType(s string) (LinkType, error) {
	if strings.TrimSpace(s) == "" {
		return DefaultLinkType, nil
	}
	t := LinkType(strings.ToLower(strings.TrimSpace(s)))
	if err := t.Validate(); err != nil {
		return "", err
	}
	return t, nil
}

// ParseScope accepts a scope in any case. Empty means DefaultScope.
func ParseScope(s string) (Scope, error) {
	if strings.TrimSpace(s) == "" {
		return DefaultScope, nil
	}
	sc := Scope(strings.ToLower(strings.TrimSpace(s)))
	if err := sc.Validate(); err != nil {
		return "", err
	}
	return sc, nil
}

func (t LinkType) Validate() error {
	switch t {
	case LinkView, LinkEdit, LinkEmbed:
		return nil
	}
	return fmt.Errorf("%w: unsupported link type %q (want view, edit or embed)", graph.ErrInvalidArgument, string(t))
}

func (s Scope) Validate() error {
	switch s {
	case ScopeAnonymous, ScopeOrganization, ScopeUsers:
		return nil
	}
	return fmt.Errorf("%w: unsupported scope %q (want anonymous, organization or users)", graph.ErrInvalidArgument, string(s))
}

// Copyright (c) 2025 Gabriel Lawrence
//
// Licensed under the MIT License. See LICENSE file in the project root for full license information.

// Package resolve walks a Path of display names down the OneNote hierarchy:
// notebook, section groups, section, page.
//
// Each segment costs one listing call against the level it names. Lookups are
// sequential, nothing is cached, and the first failed lookup ends the walk. A
// section reached through k section groups takes k+1 listings; its page takes
// one more.
//
// Usage Example:
//   r := resolve.NewResolver(store)
//   nb, err := r.ResolveNotebook(ctx, "Mine")
//   page, err := r.ResolvePage(ctx, nb.ID, resolve.Path{"Journal", "2022", "2022-05", "2022-05-05"})
package resolve

import (
	"context"
	"fmt"
	"strings"

	"github.com/gebl/onenote-connector/internal/graph"
	"github.com/gebl/onenote-connector/internal/logging"
)

// Store lists the children of each level of the hierarchy. Every list is
// complete and in service order.
type Store interface {
	ListNotebooks(ctx context.Context) ([]graph.Notebook, error)
	ListNotebookSections(ctx context.Context, notebookID string) ([]graph.Section, error)
	ListNotebookSectionGroups(ctx context.Context, notebookID string) ([]graph.SectionGroup, error)
	ListSectionGroupSections(ctx context.Context, sectionGroupID string) ([]graph.Section, error)
	ListSectionGroupSectionGroups(ctx context.Context, sectionGroupID string) ([]graph.SectionGroup, error)
	ListPages(ctx context.Context, sectionID string) ([]graph.Page, error)
}

type Resolver struct {
	store Store
}

func NewResolver(store Store) *Resolver {
	return &Resolver{store: store}
}

// ResolveNotebook finds one of the caller's notebooks by display name.
func (r *Resolver) ResolveNotebook(ctx context.Context, name string) (graph.Notebook, error) {
	if strings.TrimSpace(name) == "" {
		return graph.Notebook{}, fmt.Errorf("%w: notebook name is blank", graph.ErrInvalidArgument)
	}

	notebooks, err := r.store.ListNotebooks(ctx)
	if err != nil {
		return graph.Notebook{}, err
	}
	nb, ok := findByName(notebooks, name, func(n graph.Notebook) string { return n.DisplayName })
	if !ok {
		logging.ResolveLogger.Debug("Notebook not found", "name", name, "candidates", len(notebooks))
		return graph.Notebook{}, &graph.NotFoundError{Kind: "notebook", Name: name}
	}
	logging.ResolveLogger.Debug("Notebook resolved", "name", name, "notebook_id", nb.ID)
	return nb, nil
}

// ResolveSection finds the section named by the last segment of path. The
// segments before it name section groups, outermost first.
func (r *Resolver) ResolveSection(ctx context.Context, notebookID string, path Path) (graph.Section, error) {
	if err := path.CheckSection(); err != nil {
		return graph.Section{}, err
	}
	return r.resolveSection(ctx, notebookID, path, path)
}

// resolveSection walks path. Not-found errors report fullPath, which is the
// page path when resolving a page.
func (r *Resolver) resolveSection(ctx context.Context, notebookID string, path, fullPath Path) (graph.Section, error) {
	last := len(path) - 1
	if last == 0 {
		sections, err := r.store.ListNotebookSections(ctx, notebookID)
		if err != nil {
			return graph.Section{}, err
		}
		return r.pickSection(sections, path[last], fullPath)
	}

	groups, err := r.store.ListNotebookSectionGroups(ctx, notebookID)
	if err != nil {
		return graph.Section{}, err
	}
	group, err := pickGroup(groups, path[0], fullPath)
	if err != nil {
		return graph.Section{}, err
	}

	for _, name := range path[1:last] {
		groups, err = r.store.ListSectionGroupSectionGroups(ctx, group.ID)
		if err != nil {
			return graph.Section{}, err
		}
		if group, err = pickGroup(groups, name, fullPath); err != nil {
			return graph.Section{}, err
		}
	}

	sections, err := r.store.ListSectionGroupSections(ctx, group.ID)
	if err != nil {
		return graph.Section{}, err
	}
	return r.pickSection(sections, path[last], fullPath)
}

// ResolvePage finds the page titled by the last segment of path inside the
// section named by the rest of it. The returned page carries that section.
func (r *Resolver) ResolvePage(ctx context.Context, notebookID string, path Path) (graph.Page, error) {
	if err := path.CheckPage(); err != nil {
		return graph.Page{}, err
	}

	section, err := r.resolveSection(ctx, notebookID, path[:len(path)-1], path)
	if err != nil {
		return graph.Page{}, err
	}

	pages, err := r.store.ListPages(ctx, section.ID)
	if err != nil {
		return graph.Page{}, err
	}
	title := path[len(path)-1]
	page, ok := findByName(pages, title, func(p graph.Page) string { return p.Title })
	if !ok {
		return graph.Page{}, &graph.NotFoundError{Kind: "page", Name: title, Path: path.String()}
	}

	page.Section = &section
	logging.ResolveLogger.Debug("Page resolved", "path", path.String(), "page_id", page.ID)
	return page, nil
}

func (r *Resolver) pickSection(sections []graph.Section, name string, path Path) (graph.Section, error) {
	s, ok := findByName(sections, name, func(s graph.Section) string { return s.DisplayName })
	if !ok {
		return graph.Section{}, &graph.NotFoundError{Kind: "section", Name: name, Path: path.String()}
	}
	logging.ResolveLogger.Debug("Section resolved", "path", path.String(), "section_id", s.ID)
	return s, nil
}

func pickGroup(groups []graph.SectionGroup, name string, path Path) (graph.SectionGroup, error) {
	g, ok := findByName(groups, name, func(g graph.SectionGroup) string { return g.DisplayName })
	if !ok {
		return graph.SectionGroup{}, &graph.NotFoundError{Kind: "section group", Name: name, Path: path.String()}
	}
	return g, nil
}

// findByName returns the first item whose name equals want, ignoring case.
// Later items with the same name are never considered.
func findByName[T any](items []T, want string, name func(T) string) (T, bool) {
	for _, item := range items {
		if strings.EqualFold(name(item), want) {
			return item, true
		}
	}
	var zero T
	return zero, false
}

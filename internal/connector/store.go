package connector

import (
	"context"

	"github.com/gebl/onenote-connector/internal/graph"
	"github.com/gebl/onenote-connector/internal/notebooks"
	"github.com/gebl/onenote-connector/internal/pages"
	"github.com/gebl/onenote-connector/internal/sections"
)

// graphStore serves resolve.Store from the Graph-backed clients.
type graphStore struct {
	notebooks *notebooks.NotebookClient
	sections  *sections.SectionClient
	pages     *pages.PageClient
}

func (s *graphStore) ListNotebooks(ctx context.Context) ([]graph.Notebook, error) {
	return s.notebooks.ListNotebooks(ctx)
}

func (s *graphStore) ListNotebookSections(ctx context.Context, notebookID string) ([]graph.Section, error) {
	return s.sections.ListNotebookSections(ctx, notebookID)
}

func (s *graphStore) ListNotebookSectionGroups(ctx context.Context, notebookID string) ([]graph.SectionGroup, error) {
	return s.sections.ListNotebookSectionGroups(ctx, notebookID)
}

func (s *graphStore) ListSectionGroupSections(ctx context.Context, sectionGroupID string) ([]graph.Section, error) {
	return s.sections.ListSectionGroupSections(ctx, sectionGroupID)
}

func (s *graphStore) ListSectionGroupSectionGroups(ctx context.Context, sectionGroupID string) ([]graph.SectionGroup, error) {
	return s.sections.ListSectionGroupSectionGroups(ctx, sectionGroupID)
}

func (s *graphStore) ListPages(ctx context.Context, sectionID string) ([]graph.Page, error) {
	return s.pages.ListPages(ctx, sectionID)
}

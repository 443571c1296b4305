package resolve

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/gebl/onenote-connector/internal/graph"
)

// MockStore is a testify mock of Store.
type MockStore struct {
	mock.Mock
}

func (m *MockStore) ListNotebooks(ctx context.Context) ([]graph.Notebook, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]graph.Notebook), args.Error(1)
}

func (m *MockStore) ListNotebookSections(ctx context.Context, notebookID string) ([]graph.Section, error) {
	args := m.Called(ctx, notebookID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]graph.Section), args.Error(1)
}

func (m *MockStore) ListNotebookSectionGroups(ctx context.Context, notebookID string) ([]graph.SectionGroup, error) {
	args := m.Called(ctx, notebookID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]graph.SectionGroup), args.Error(1)
}

func (m *MockStore) ListSectionGroupSections(ctx context.Context, sectionGroupID string) ([]graph.Section, error) {
	args := m.Called(ctx, sectionGroupID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]graph.Section), args.Error(1)
}

func (m *MockStore) ListSectionGroupSectionGroups(ctx context.Context, sectionGroupID string) ([]graph.SectionGroup, error) {
	args := m.Called(ctx, sectionGroupID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]graph.SectionGroup), args.Error(1)
}

func (m *MockStore) ListPages(ctx context.Context, sectionID string) ([]graph.Page, error) {
	args := m.Called(ctx, sectionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]graph.Page), args.Error(1)
}

// Copyright (c) 2025 Gabriel Lawrence
//
// Licensed under the MIT License. See LICENSE file in the project root for full license information.

// sections.go - Section listings for notebooks and section groups.
//
// A section lives directly in a notebook or inside a section group; the two
// containers have separate endpoints and separate methods here. Every listing
// follows pagination to the end and keeps the service order.
//
// Usage Example:
//   sectionClient := sections.NewSectionClient(graphClient)
//   secs, err := sectionClient.ListNotebookSections(ctx, notebookID)

package sections

import (
	"context"

	msgraphmodels "github.com/microsoftgraph/msgraph-sdk-go/models"

	"github.com/gebl/onenote-connector/internal/graph"
	"github.com/gebl/onenote-connector/internal/logging"
)

// SectionClient provides section and section group listings
type SectionClient struct {
	*graph.Client
}

func NewSectionClient(client *graph.Client) *SectionClient {
	return &SectionClient{Client: client}
}

// ListNotebookSections lists the sections directly inside a notebook.
func (c *SectionClient) ListNotebookSections(ctx context.Context, notebookID string) ([]graph.Section, error) {
	id, err := c.SanitizeOneNoteID(notebookID, "notebookID")
	if err != nil {
		return nil, err
	}
	logging.SectionLogger.Debug("Listing notebook sections", "notebook_id", id)

	result, err := c.GraphClient.Me().Onenote().Notebooks().ByNotebookId(id).Sections().Get(ctx, nil)
	if err != nil {
		logging.SectionLogger.Error("Failed to list notebook sections", "notebook_id", id, "error", graph.DescribeError(err))
		return nil, err
	}
	return c.collectSections(ctx, result)
}

// ListSectionGroupSections lists the sections directly inside a section group.
func (c *SectionClient) ListSectionGroupSections(ctx context.Context, sectionGroupID string) ([]graph.Section, error) {
	id, err := c.SanitizeOneNoteID(sectionGroupID, "sectionGroupID")
	if err != nil {
		return nil, err
	}
	logging.SectionLogger.Debug("Listing section group sections", "section_group_id", id)

	result, err := c.GraphClient.Me().Onenote().SectionGroups().BySectionGroupId(id).Sections().Get(ctx, nil)
	if err != nil {
		logging.SectionLogger.Error("Failed to list section group sections", "section_group_id", id, "error", graph.DescribeError(err))
		return nil, err
	}
	return c.collectSections(ctx, result)
}

func (c *SectionClient) collectSections(ctx context.Context, first msgraphmodels.OnenoteSectionCollectionResponseable) ([]graph.Section, error) {
	sections, err := graph.CollectAll[msgraphmodels.OnenoteSectionable](ctx, c.Client, first,
		msgraphmodels.CreateOnenoteSectionCollectionResponseFromDiscriminatorValue, graph.SectionFrom)
	if err != nil {
		return nil, err
	}
	logging.SectionLogger.Debug("Sections listed", "count", len(sections))
	return sections, nil
}

package sections

import (
	"context"

	msgraphmodels "github.com/microsoftgraph/msgraph-sdk-go/models"

	"github.com/gebl/onenote-connector/internal/graph"
	"github.com/gebl/onenote-connector/internal/logging"
)

// ListNotebookSectionGroups lists the top-level section groups of a notebook.
func (c *SectionClient) ListNotebookSectionGroups(ctx context.Context, notebookID string) ([]graph.SectionGroup, error) {
	id, err := c.SanitizeOneNoteID(notebookID, "notebookID")
	if err != nil {
		return nil, err
	}
	logging.SectionLogger.Debug("Listing notebook section groups", "notebook_id", id)

	result, err := c.GraphClient.Me().Onenote().Notebooks().ByNotebookId(id).SectionGroups().Get(ctx, nil)
	if err != nil {
		logging.SectionLogger.Error("Failed to list notebook section groups", "notebook_id", id, "error", graph.DescribeError(err))
		return nil, err
	}
	return c.collectSectionGroups(ctx, result)
}

// ListSectionGroupSectionGroups lists the section groups nested one level below a section group.
func (c *SectionClient) ListSectionGroupSectionGroups(ctx context.Context, sectionGroupID string) ([]graph.SectionGroup, error) {
	id, err := c.SanitizeOneNoteID(sectionGroupID, "sectionGroupID")
	if err != nil {
		return nil, err
	}
	logging.SectionLogger.Debug("Listing nested section groups", "section_group_id", id)

	result, err := c.GraphClient.Me().Onenote().SectionGroups().BySectionGroupId(id).SectionGroups().Get(ctx, nil)
	if err != nil {
		logging.SectionLogger.Error("Failed to list nested section groups", "section_group_id", id, "error", graph.DescribeError(err))
		return nil, err
	}
	return c.collectSectionGroups(ctx, result)
}

func (c *SectionClient) collectSectionGroups(ctx context.Context, first msgraphmodels.SectionGroupCollectionResponseable) ([]graph.SectionGroup, error) {
	groups, err := graph.CollectAll[msgraphmodels.SectionGroupable](ctx, c.Client, first,
		msgraphmodels.CreateSectionGroupCollectionResponseFromDiscriminatorValue, graph.SectionGroupFrom)
	if err != nil {
		return nil, err
	}
	logging.SectionLogger.Debug("Section groups listed", "count", len(groups))
	return groups, nil
}

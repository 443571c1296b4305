// notebooks.go - Notebook listing for the signed-in user.
//
// Usage Example:
//   nb := notebooks.NewNotebookClient(graphClient)
//   all, err := nb.ListNotebooks(ctx)

package notebooks

import (
	"context"

	msgraphmodels "github.com/microsoftgraph/msgraph-sdk-go/models"

	"github.com/gebl/onenote-connector/internal/graph"
	"github.com/gebl/onenote-connector/internal/logging"
)

// NotebookClient provides notebook operations for the Graph API client
type NotebookClient struct {
	*graph.Client
}

func NewNotebookClient(client *graph.Client) *NotebookClient {
	return &NotebookClient{Client: client}
}

// ListNotebooks returns every notebook of the signed-in user in service order,
// following pagination to the end.
func (c *NotebookClient) ListNotebooks(ctx context.Context) ([]graph.Notebook, error) {
	logging.NotebookLogger.Debug("Listing notebooks")

	result, err := c.GraphClient.Me().Onenote().Notebooks().Get(ctx, nil)
	if err != nil {
		logging.NotebookLogger.Error("Failed to list notebooks", "error", graph.DescribeError(err))
		return nil, err
	}

	notebooks, err := graph.CollectAll[msgraphmodels.Notebookable](ctx, c.Client, result,
		msgraphmodels.CreateNotebookCollectionResponseFromDiscriminatorValue, graph.NotebookFrom)
	if err != nil {
		logging.NotebookLogger.Error("Failed to page through notebooks", "error", graph.DescribeError(err))
		return nil, err
	}

	logging.NotebookLogger.Info("Found notebooks", "count", len(notebooks))
	return notebooks, nil
}

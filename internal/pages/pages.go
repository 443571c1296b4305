// pages.go - Page listing and content streaming.
//
// ListPages goes through the Graph SDK like the other listings. Page content is
// fetched with a raw authenticated GET so the HTML body can be handed out as a
// stream.Source without being buffered or parsed.
//
// Usage Example:
//   pageClient := pages.NewPageClient(graphClient)
//   list, err := pageClient.ListPages(ctx, sectionID)
//   src, err := pageClient.OpenContent(ctx, list[0].ID)
//   defer src.Close()

package pages

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	msgraphmodels "github.com/microsoftgraph/msgraph-sdk-go/models"

	"github.com/gebl/onenote-connector/internal/graph"
	"github.com/gebl/onenote-connector/internal/logging"
	"github.com/gebl/onenote-connector/internal/stream"
)

// PageClient provides page-specific operations
type PageClient struct {
	*graph.Client
}

// NewPageClient creates a new PageClient
func NewPageClient(client *graph.Client) *PageClient {
	return &PageClient{Client: client}
}

// ListPages fetches all pages in a section, following pagination, in service order.
func (c *PageClient) ListPages(ctx context.Context, sectionID string) ([]graph.Page, error) {
	id, err := c.SanitizeOneNoteID(sectionID, "sectionID")
	if err != nil {
		return nil, err
	}
	logging.PageLogger.Debug("Listing pages", "section_id", id)

	result, err := c.GraphClient.Me().Onenote().Sections().ByOnenoteSectionId(id).Pages().Get(ctx, nil)
	if err != nil {
		logging.PageLogger.Error("Failed to list pages", "section_id", id, "error", graph.DescribeError(err))
		return nil, err
	}

	pages, err := graph.CollectAll[msgraphmodels.OnenotePageable](ctx, c.Client, result,
		msgraphmodels.CreateOnenotePageCollectionResponseFromDiscriminatorValue, graph.PageFrom)
	if err != nil {
		logging.PageLogger.Error("Failed to page through pages", "section_id", id, "error", graph.DescribeError(err))
		return nil, err
	}

	logging.PageLogger.Debug("Pages listed", "section_id", id, "count", len(pages))
	return pages, nil
}

// OpenContent starts the download of a page's HTML content. The returned source
// reads directly from the response body and must be closed by the caller. Its
// length is known when the service sent a Content-Length.
func (c *PageClient) OpenContent(ctx context.Context, pageID string) (stream.Source, error) {
	id, err := c.SanitizeOneNoteID(pageID, "pageID")
	if err != nil {
		return nil, err
	}

	contentURL := fmt.Sprintf("%s/me/onenote/pages/%s/content", c.BaseURL, url.PathEscape(id))
	logging.PageLogger.Debug("Opening page content", "page_id", id)

	resp, err := c.MakeAuthenticatedRequest(ctx, http.MethodGet, contentURL, nil, map[string]string{"Accept": "text/html"})
	if err != nil {
		logging.PageLogger.Error("Page content request failed", "page_id", id, "error", err)
		return nil, err
	}
	if err := c.HandleHTTPResponse(resp, "GetPageContent"); err != nil {
		logging.PageLogger.Error("Page content request rejected", "page_id", id, "status", resp.StatusCode, "error", err)
		return nil, err
	}

	logging.PageLogger.Debug("Page content opened", "page_id", id, "content_length", resp.ContentLength)
	return stream.NewSource(resp.Body, resp.ContentLength), nil
}

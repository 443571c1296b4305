// Copyright (c) 2025 Gabriel Lawrence
//
// Licensed under the MIT License. See LICENSE file in the project root for full license information.

// sharing.go - Share links for OneNote entities.
//
// OneNote sections are stored as files in OneDrive or SharePoint. A section's
// web URL is resolved to its drive item through the shares API, and the link
// is created on that item with the createLink action.
//
// Usage Example:
//   shareClient := sharing.NewShareClient(graphClient)
//   link, err := shareClient.CreateLink(ctx, section.WebURL, sharing.LinkView, sharing.ScopeOrganization)

package sharing

import (
	"context"
	"errors"

	"github.com/microsoftgraph/msgraph-sdk-go/drives"

	"github.com/gebl/onenote-connector/internal/graph"
	"github.com/gebl/onenote-connector/internal/logging"
)

// ErrNoWebURL is returned for entities the service reported without a web URL.
var ErrNoWebURL = errors.New("entity has no web URL to share")

// ShareClient creates share links through the Graph SDK
type ShareClient struct {
	*graph.Client
}

func NewShareClient(client *graph.Client) *ShareClient {
	return &ShareClient{Client: client}
}

// DriveItemRef identifies a file in a drive.
type DriveItemRef struct {
	DriveID string
	ItemID  string
}

// ResolveDriveItem maps a web URL to the drive item behind it.
func (c *ShareClient) ResolveDriveItem(ctx context.Context, webURL string) (DriveItemRef, error) {
	if webURL == "" {
		return DriveItemRef{}, ErrNoWebURL
	}

	item, err := c.GraphClient.Shares().BySharedDriveItemId(graph.EncodeSharingURL(webURL)).DriveItem().Get(ctx, nil)
	if err != nil {
		logging.ShareLogger.Error("Failed to resolve shared item", "error", graph.DescribeError(err))
		return DriveItemRef{}, err
	}

	ref := DriveItemRef{}
	if id := item.GetId(); id != nil {
		ref.ItemID = *id
	}
	if parent := item.GetParentReference(); parent != nil && parent.GetDriveId() != nil {
		ref.DriveID = *parent.GetDriveId()
	}
	if ref.DriveID == "" || ref.ItemID == "" {
		return DriveItemRef{}, errors.New("shared item response is missing its drive or item id")
	}
	logging.ShareLogger.Debug("Resolved drive item", "drive_id", ref.DriveID, "item_id", ref.ItemID)
	return ref, nil
}

// CreateLink returns a share link for the entity at webURL. linkType and scope
// are validated before any request is made.
func (c *ShareClient) CreateLink(ctx context.Context, webURL string, linkType LinkType, scope Scope) (string, error) {
	if err := linkType.Validate(); err != nil {
		return "", err
	}
	if err := scope.Validate(); err != nil {
		return "", err
	}

	ref, err := c.ResolveDriveItem(ctx, webURL)
	if err != nil {
		return "", err
	}

	body := drives.NewItemItemsItemCreateLinkPostRequestBody()
	typ := string(linkType)
	sc := string(scope)
	body.SetTypeEscaped(&typ)
	body.SetScope(&sc)

	perm, err := c.GraphClient.Drives().ByDriveId(ref.DriveID).Items().ByDriveItemId(ref.ItemID).CreateLink().Post(ctx, body, nil)
	if err != nil {
		logging.ShareLogger.Error("createLink failed", "drive_id", ref.DriveID, "item_id", ref.ItemID, "error", graph.DescribeError(err))
		return "", err
	}

	link := perm.GetLink()
	if link == nil || link.GetWebUrl() == nil || *link.GetWebUrl() == "" {
		return "", errors.New("createLink response did not contain a link")
	}

	logging.ShareLogger.Info("Share link created", "type", typ, "scope", sc)
	return *link.GetWebUrl(), nil
}

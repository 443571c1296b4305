// Copyright (c) 2025 Gabriel Lawrence
//
// Licensed under the MIT License. See LICENSE file in the project root for full license information.

// Package connector turns a notebook name and a Path into page content streams
// and share links.
//
// Every operation first resolves the notebook by name, then walks the path
// with a resolve.Resolver. Nothing is cached between calls; each call repeats
// the listings it needs.
package connector

import (
	"context"

	"github.com/gebl/onenote-connector/internal/graph"
	"github.com/gebl/onenote-connector/internal/logging"
	"github.com/gebl/onenote-connector/internal/notebooks"
	"github.com/gebl/onenote-connector/internal/pages"
	"github.com/gebl/onenote-connector/internal/resolve"
	"github.com/gebl/onenote-connector/internal/sections"
	"github.com/gebl/onenote-connector/internal/sharing"
	"github.com/gebl/onenote-connector/internal/stream"
)

// ContentOpener lists the pages of a section and opens their content.
type ContentOpener interface {
	ListPages(ctx context.Context, sectionID string) ([]graph.Page, error)
	OpenContent(ctx context.Context, pageID string) (stream.Source, error)
}

// LinkCreator creates a share link for the entity behind a web URL.
type LinkCreator interface {
	CreateLink(ctx context.Context, webURL string, linkType sharing.LinkType, scope sharing.Scope) (string, error)
}

type Connector struct {
	resolver *resolve.Resolver
	content  ContentOpener
	links    LinkCreator
}

func New(resolver *resolve.Resolver, content ContentOpener, links LinkCreator) *Connector {
	return &Connector{resolver: resolver, content: content, links: links}
}

// NewFromGraph wires a Connector to Microsoft Graph through client.
func NewFromGraph(client *graph.Client) *Connector {
	pageClient := pages.NewPageClient(client)
	store := &graphStore{
		notebooks: notebooks.NewNotebookClient(client),
		sections:  sections.NewSectionClient(client),
		pages:     pageClient,
	}
	return New(resolve.NewResolver(store), pageClient, sharing.NewShareClient(client))
}

// GetPageContentStream opens the HTML content of the page at path. The caller
// must close the returned source.
func (c *Connector) GetPageContentStream(ctx context.Context, notebookName string, path resolve.Path) (stream.Source, error) {
	page, err := c.resolvePage(ctx, notebookName, path)
	if err != nil {
		return nil, err
	}
	src, err := c.content.OpenContent(ctx, page.ID)
	if err != nil {
		logging.ConnectorLogger.Error("Failed to open page content", "path", path.String(), "page_id", page.ID, "error", err)
		return nil, err
	}
	return src, nil
}

// GetSectionContentStream opens every page of the section at path, in listing
// order, and concatenates their content. Pages are opened one after another;
// if one fails, those already opened are closed before the error is returned.
func (c *Connector) GetSectionContentStream(ctx context.Context, notebookName string, path resolve.Path) (*stream.ConcatReader, error) {
	section, err := c.resolveSection(ctx, notebookName, path)
	if err != nil {
		return nil, err
	}

	pageList, err := c.content.ListPages(ctx, section.ID)
	if err != nil {
		return nil, err
	}

	opened := make([]stream.Source, 0, len(pageList))
	for _, p := range pageList {
		src, err := c.content.OpenContent(ctx, p.ID)
		if err != nil {
			logging.ConnectorLogger.Error("Failed to open page in section", "path", path.String(), "page_id", p.ID, "opened", len(opened), "error", err)
			if cerr := stream.Concat(opened...).Close(); cerr != nil {
				logging.ConnectorLogger.Warn("Closing opened pages failed", "error", cerr)
			}
			return nil, err
		}
		opened = append(opened, src)
	}

	logging.ConnectorLogger.Debug("Section stream opened", "path", path.String(), "pages", len(opened))
	return stream.Concat(opened...), nil
}

// CreatePageShareLink shares the page at path. Pages are not files of their
// own, so the link is created on the section file that contains the page.
func (c *Connector) CreatePageShareLink(ctx context.Context, notebookName string, path resolve.Path, linkType sharing.LinkType, scope sharing.Scope) (string, error) {
	if err := validateLink(linkType, scope); err != nil {
		return "", err
	}
	page, err := c.resolvePage(ctx, notebookName, path)
	if err != nil {
		return "", err
	}
	logging.ConnectorLogger.Warn("Page share link covers every page in its section",
		"path", path.String(), "section", page.Section.DisplayName, "type", linkType, "scope", scope)
	return c.links.CreateLink(ctx, page.Section.WebURL, linkType, scope)
}

// CreateSectionShareLink shares the section at path.
func (c *Connector) CreateSectionShareLink(ctx context.Context, notebookName string, path resolve.Path, linkType sharing.LinkType, scope sharing.Scope) (string, error) {
	if err := validateLink(linkType, scope); err != nil {
		return "", err
	}
	section, err := c.resolveSection(ctx, notebookName, path)
	if err != nil {
		return "", err
	}
	return c.links.CreateLink(ctx, section.WebURL, linkType, scope)
}

func (c *Connector) resolvePage(ctx context.Context, notebookName string, path resolve.Path) (graph.Page, error) {
	if err := path.CheckPage(); err != nil {
		return graph.Page{}, err
	}
	nb, err := c.resolver.ResolveNotebook(ctx, notebookName)
	if err != nil {
		return graph.Page{}, err
	}
	return c.resolver.ResolvePage(ctx, nb.ID, path)
}

func (c *Connector) resolveSection(ctx context.Context, notebookName string, path resolve.Path) (graph.Section, error) {
	if err := path.CheckSection(); err != nil {
		return graph.Section{}, err
	}
	nb, err := c.resolver.ResolveNotebook(ctx, notebookName)
	if err != nil {
		return graph.Section{}, err
	}
	return c.resolver.ResolveSection(ctx, nb.ID, path)
}

func validateLink(linkType sharing.LinkType, scope sharing.Scope) error {
	if err := linkType.Validate(); err != nil {
		return err
	}
	return scope.Validate()
}

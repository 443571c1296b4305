package main

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/gebl/onenote-connector/internal/resolve"
	"github.com/gebl/onenote-connector/internal/sharing"
	"github.com/gebl/onenote-connector/internal/tools"
	"github.com/gebl/onenote-connector/internal/utils"
)

func linkOptions() []mcp.ToolOption {
	return []mcp.ToolOption{
		mcp.WithString("linkType",
			mcp.Description("view (default), edit or embed"),
			mcp.Enum(string(sharing.LinkView), string(sharing.LinkEdit), string(sharing.LinkEmbed))),
		mcp.WithString("scope",
			mcp.Description("anonymous (default), organization or users"),
			mcp.Enum(string(sharing.ScopeAnonymous), string(sharing.ScopeOrganization), string(sharing.ScopeUsers))),
	}
}

// shareLinkFunc is CreatePageShareLink or CreateSectionShareLink.
type shareLinkFunc func(ctx context.Context, notebook string, path resolve.Path, t sharing.LinkType, s sharing.Scope) (string, error)

func shareHandler(deps *toolDeps, operation string, create shareLinkFunc) func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		logger := utils.NewToolLogger(operation)
		params := utils.NewParameterExtractor(req, logger)

		rawPath, err := params.RequireString("path")
		if err != nil {
			return utils.ToolResults.NewError("create share link", err), nil
		}
		path, err := resolve.ParsePath(rawPath)
		if err != nil {
			return utils.ToolResults.NewError("create share link", err), nil
		}
		notebook, err := deps.notebookName(params.OptionalString("notebook", ""))
		if err != nil {
			return utils.ToolResults.NewError("create share link", err), nil
		}
		linkType, err := sharing.ParseLinkType(params.OptionalString("linkType", deps.cfg.LinkType))
		if err != nil {
			return utils.ToolResults.NewError("create share link", err), nil
		}
		scope, err := sharing.ParseScope(params.OptionalString("scope", deps.cfg.LinkScope))
		if err != nil {
			return utils.ToolResults.NewError("create share link", err), nil
		}

		link, err := create(ctx, notebook, path, linkType, scope)
		if err != nil {
			logger.LogError(err, "notebook", notebook, "path", path.String())
			return utils.ToolResults.NewError("create share link", err), nil
		}

		logger.LogSuccess("notebook", notebook, "path", path.String(), "type", linkType, "scope", scope)
		return utils.ToolResults.NewJSONResult(operation, map[string]string{
			"link":     link,
			"linkType": string(linkType),
			"scope":    string(scope),
			"path":     path.String(),
			"notebook": notebook,
		}), nil
	}
}

// shareTools returns the share link tools
func shareTools(deps *toolDeps) []tools.Tool {
	return []tools.Tool{
		{
			Toolset: tools.ToolsetSharing,
			Definition: pathTool("createPageShareLink",
				"Section groups, section and page title separated by '/'", linkOptions()...),
			Handler: shareHandler(deps, "createPageShareLink", deps.conn.CreatePageShareLink),
		},
		{
			Toolset: tools.ToolsetSharing,
			Definition: pathTool("createSectionShareLink",
				"Section groups and section separated by '/'", linkOptions()...),
			Handler: shareHandler(deps, "createSectionShareLink", deps.conn.CreateSectionShareLink),
		},
	}
}

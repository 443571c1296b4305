// Copyright (c) 2025 Gabriel Lawrence
//
// Licensed under the MIT License. See LICENSE file in the project root for full license information.

package main

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gebl/onenote-connector/internal/auth"
	"github.com/gebl/onenote-connector/internal/config"
	"github.com/gebl/onenote-connector/internal/connector"
	"github.com/gebl/onenote-connector/internal/graph"
	"github.com/gebl/onenote-connector/internal/graph/graphtest"
	"github.com/gebl/onenote-connector/internal/notebooks"
)

const sectionWebURL = "https://contoso.sharepoint.com/sites/me/Mine/Inbox.one"

// inboxServer serves notebook Mine with section Inbox holding pages Todo and Done.
func inboxServer(t *testing.T) *graphtest.Server {
	t.Helper()
	srv := graphtest.New(t)
	srv.Collection("/me/onenote/notebooks", graphtest.Notebook("nb-mine", "Mine"), graphtest.Notebook("nb-work", "Work"))
	srv.Collection("/me/onenote/notebooks/nb-mine/sections", graphtest.Section("s-inbox", "Inbox", sectionWebURL))
	srv.Collection("/me/onenote/sections/s-inbox/pages", graphtest.Page("p-todo", "Todo"), graphtest.Page("p-done", "Done"))
	srv.Handle("/me/onenote/pages/p-todo/content", func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, "<h1>Todo</h1><p>Some text content</p>")
	})
	srv.Handle("/me/onenote/pages/p-done/content", func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, "<h1>Done</h1>")
	})
	srv.JSON("/shares/"+graph.EncodeSharingURL(sectionWebURL)+"/driveItem", map[string]any{
		"id": "item-inbox", "parentReference": map[string]any{"driveId": "drive-me"},
	})
	srv.Handle("POST /drives/drive-me/items/item-inbox/createLink", func(w http.ResponseWriter, r *http.Request) {
		graphtest.WriteJSON(w, http.StatusOK, map[string]any{"link": map[string]any{"webUrl": "https://1drv.ms/o/s!inbox"}})
	})
	return srv
}

func testDeps(t *testing.T, srv *graphtest.Server, cfg *config.Config) *toolDeps {
	t.Helper()
	client := srv.NewClient(t)
	return &toolDeps{
		cfg:       cfg,
		conn:      connector.NewFromGraph(client),
		notebooks: notebooks.NewNotebookClient(client),
		tokens:    auth.StaticTokenSource(graphtest.Token),
	}
}

// callTool registers every tool and invokes name with args.
func callTool(t *testing.T, deps *toolDeps, name string, args map[string]any) *mcp.CallToolResult {
	t.Helper()
	registry := registerTools(server.NewMCPServer("test", "0"), deps)
	for _, tool := range registry.ListTools() {
		if tool.Name() == name {
			req := mcp.CallToolRequest{}
			req.Params.Name = name
			req.Params.Arguments = args
			result, err := tool.Handler(context.Background(), req)
			require.NoError(t, err)
			return result
		}
	}
	t.Fatalf("tool %s not registered", name)
	return nil
}

func text(t *testing.T, r *mcp.CallToolResult) string {
	t.Helper()
	require.NotEmpty(t, r.Content)
	tc, ok := r.Content[0].(mcp.TextContent)
	require.True(t, ok)
	return tc.Text
}

func TestGetPageContentTool(t *testing.T) {
	srv := inboxServer(t)
	deps := testDeps(t, srv, &config.Config{NotebookName: "Mine"})

	tests := []struct {
		name     string
		args     map[string]any
		want     string
		contains string
		isError  bool
	}{
		{name: "html default notebook", args: map[string]any{"path": "Inbox/Todo"}, want: "<h1>Todo</h1><p>Some text content</p>"},
		{name: "explicit notebook", args: map[string]any{"path": "inbox/todo", "notebook": "mine"}, want: "<h1>Todo</h1><p>Some text content</p>"},
		{name: "markdown", args: map[string]any{"path": "Inbox/Todo", "format": "markdown"}, contains: "# Todo"},
		{name: "missing page", args: map[string]any{"path": "Inbox/Later"}, contains: `page "Later" not found`, isError: true},
		{name: "section path only", args: map[string]any{"path": "Inbox"}, contains: "invalid argument", isError: true},
		{name: "bad format", args: map[string]any{"path": "Inbox/Todo", "format": "pdf"}, contains: "unsupported format", isError: true},
		{name: "missing path", args: map[string]any{}, contains: "path is required", isError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := callTool(t, deps, "getPageContent", tt.args)
			assert.Equal(t, tt.isError, r.IsError)
			if tt.want != "" {
				assert.Equal(t, tt.want, text(t, r))
			}
			if tt.contains != "" {
				assert.Contains(t, text(t, r), tt.contains)
			}
		})
	}
}

func TestGetPageContentTool_NoNotebook(t *testing.T) {
	srv := inboxServer(t)
	r := callTool(t, testDeps(t, srv, &config.Config{}), "getPageContent", map[string]any{"path": "Inbox/Todo"})
	assert.True(t, r.IsError)
	assert.Contains(t, text(t, r), "notebook is required")
	assert.Empty(t, srv.Requests())
}

func TestGetSectionContentTool(t *testing.T) {
	srv := inboxServer(t)
	r := callTool(t, testDeps(t, srv, &config.Config{}), "getSectionContent", map[string]any{"path": "Inbox", "notebook": "Mine"})
	require.False(t, r.IsError, text(t, r))
	assert.Equal(t, "<h1>Todo</h1><p>Some text content</p><h1>Done</h1>", text(t, r))
}

func TestShareTools(t *testing.T) {
	srv := inboxServer(t)
	deps := testDeps(t, srv, &config.Config{NotebookName: "Mine", LinkScope: "organization"})

	r := callTool(t, deps, "createPageShareLink", map[string]any{"path": "Inbox/Todo"})
	require.False(t, r.IsError, text(t, r))
	var got map[string]string
	require.NoError(t, json.Unmarshal([]byte(text(t, r)), &got))
	assert.Equal(t, "https://1drv.ms/o/s!inbox", got["link"])
	assert.Equal(t, "view", got["linkType"])
	assert.Equal(t, "organization", got["scope"], "configured scope applies when none is given")

	r = callTool(t, deps, "createSectionShareLink", map[string]any{"path": "Inbox", "linkType": "edit", "scope": "users"})
	require.False(t, r.IsError, text(t, r))
	require.NoError(t, json.Unmarshal([]byte(text(t, r)), &got))
	assert.Equal(t, "edit", got["linkType"])
	assert.Equal(t, "users", got["scope"])

	r = callTool(t, deps, "createSectionShareLink", map[string]any{"path": "Inbox", "linkType": "download"})
	assert.True(t, r.IsError)
	assert.Contains(t, text(t, r), "unsupported link type")
}

func TestListNotebooksTool(t *testing.T) {
	srv := inboxServer(t)
	r := callTool(t, testDeps(t, srv, &config.Config{NotebookName: "mine"}), "listNotebooks", nil)
	require.False(t, r.IsError)
	assert.JSONEq(t, `[
		{"id":"nb-mine","name":"Mine","isConfigDefault":true},
		{"id":"nb-work","name":"Work","isConfigDefault":false}
	]`, text(t, r))
}

func TestGetAuthStatusTool(t *testing.T) {
	srv := inboxServer(t)
	deps := testDeps(t, srv, &config.Config{AuthMethod: config.AuthMethodPKCE})

	r := callTool(t, deps, "getAuthStatus", nil)
	require.False(t, r.IsError)
	var status auth.AuthStatus
	require.NoError(t, json.Unmarshal([]byte(text(t, r)), &status))
	assert.True(t, status.Authenticated)
	assert.Equal(t, "static", status.AuthMethod)
}

func TestRegisterTools_Toolsets(t *testing.T) {
	srv := inboxServer(t)

	registry := registerTools(server.NewMCPServer("test", "0"), testDeps(t, srv, &config.Config{}))
	assert.Len(t, registry.ListTools(), 6)

	registry = registerTools(server.NewMCPServer("test", "0"), testDeps(t, srv, &config.Config{Toolsets: []string{"content"}}))
	var names []string
	for _, tool := range registry.ListTools() {
		names = append(names, tool.Name())
	}
	assert.Equal(t, []string{"getPageContent", "getSectionContent"}, names)
}

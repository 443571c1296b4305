// Copyright (c) 2025 Gabriel Lawrence
//
// Licensed under the MIT License. See LICENSE file in the project root for full license information.

package utils

import (
	"errors"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resultText(t *testing.T, r *mcp.CallToolResult) string {
	t.Helper()
	require.NotEmpty(t, r.Content)
	text, ok := r.Content[0].(mcp.TextContent)
	require.True(t, ok, "expected text content, got %T", r.Content[0])
	return text.Text
}

func TestToolResults(t *testing.T) {
	r := ToolResults.NewError("list notebooks", errors.New("boom"))
	assert.True(t, r.IsError)
	assert.Equal(t, "Failed to list notebooks: boom", resultText(t, r))

	r = ToolResults.NewErrorf("open page", "page %q missing", "x")
	assert.True(t, r.IsError)
	assert.Equal(t, `Failed to open page: page "x" missing`, resultText(t, r))

	r = ToolResults.NewJSONResult("list", []map[string]string{{"id": "nb-1"}})
	assert.False(t, r.IsError)
	assert.JSONEq(t, `[{"id":"nb-1"}]`, resultText(t, r))

	r = ToolResults.NewJSONResult("list", make(chan int))
	assert.True(t, r.IsError)
}

func TestParameterExtractor(t *testing.T) {
	req := mcp.CallToolRequest{}
	req.Params.Arguments = map[string]any{
		"path":     "Journal/2022",
		"blank":    "  ",
		"number":   3,
		"notebook": "",
	}
	p := NewParameterExtractor(req, NewToolLogger("test"))

	got, err := p.RequireString("path")
	require.NoError(t, err)
	assert.Equal(t, "Journal/2022", got)

	_, err = p.RequireString("blank")
	assert.ErrorContains(t, err, "cannot be empty")
	_, err = p.RequireString("missing")
	assert.Error(t, err)
	_, err = p.RequireString("number")
	assert.Error(t, err)

	assert.Equal(t, "Mine", p.OptionalString("notebook", "Mine"))
	assert.Equal(t, "Mine", p.OptionalString("missing", "Mine"))
	assert.Equal(t, "Journal/2022", p.OptionalString("path", "Mine"))
}

// Copyright (c) 2025 Gabriel Lawrence
//
// Licensed under the MIT License. See LICENSE file in the project root for full license information.

// tool_helpers.go - Common utilities for MCP tool handlers.
//
// Handlers share the same result shapes, parameter checks and timing logs;
// these helpers keep them consistent across tools.

package utils

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/gebl/onenote-connector/internal/logging"
)

// ToolResult provides helper functions for creating consistent MCP tool results
type ToolResult struct{}

// NewError creates a standardized error result
func (tr ToolResult) NewError(operation string, err error) *mcp.CallToolResult {
	return mcp.NewToolResultError(fmt.Sprintf("Failed to %s: %v", operation, err))
}

// NewErrorf creates a standardized error result with formatted message
func (tr ToolResult) NewErrorf(operation string, format string, args ...interface{}) *mcp.CallToolResult {
	return mcp.NewToolResultError(fmt.Sprintf("Failed to %s: %s", operation, fmt.Sprintf(format, args...)))
}

// NewJSONResult marshals data to JSON and returns a text result, or an error result if marshaling fails
func (tr ToolResult) NewJSONResult(operation string, data interface{}) *mcp.CallToolResult {
	jsonBytes, err := json.Marshal(data)
	if err != nil {
		logging.ToolsLogger.Error("Failed to marshal JSON response", "operation", operation, "error", err)
		return tr.NewError(fmt.Sprintf("marshal %s response", operation), err)
	}
	return mcp.NewToolResultText(string(jsonBytes))
}

var ToolResults = ToolResult{}

// ToolLogger provides standardized logging for tool operations
type ToolLogger struct {
	operation string
	startTime time.Time
}

func NewToolLogger(operation string) *ToolLogger {
	logging.ToolsLogger.Info("Starting tool operation", "operation", operation, "type", "tool_invocation")
	return &ToolLogger{operation: operation, startTime: time.Now()}
}

func (tl *ToolLogger) LogError(err error, extraFields ...interface{}) {
	fields := []interface{}{"operation", tl.operation, "error", err, "duration", time.Since(tl.startTime)}
	fields = append(fields, extraFields...)
	logging.ToolsLogger.Error("Tool operation failed", fields...)
}

func (tl *ToolLogger) LogDebug(message string, extraFields ...interface{}) {
	fields := []interface{}{"operation", tl.operation}
	fields = append(fields, extraFields...)
	logging.ToolsLogger.Debug(message, fields...)
}

// LogSuccess logs successful completion with duration
func (tl *ToolLogger) LogSuccess(extraFields ...interface{}) {
	fields := []interface{}{"operation", tl.operation, "duration", time.Since(tl.startTime)}
	fields = append(fields, extraFields...)
	logging.ToolsLogger.Debug("Tool operation completed successfully", fields...)
}

// ToolParameterExtractor pulls string parameters out of a tool request
type ToolParameterExtractor struct {
	req    mcp.CallToolRequest
	logger *ToolLogger
}

func NewParameterExtractor(req mcp.CallToolRequest, logger *ToolLogger) *ToolParameterExtractor {
	return &ToolParameterExtractor{req: req, logger: logger}
}

// RequireString returns a non-blank string parameter.
func (tpe *ToolParameterExtractor) RequireString(paramName string) (string, error) {
	value, err := tpe.req.RequireString(paramName)
	if err != nil {
		tpe.logger.LogError(err, "parameter", paramName)
		return "", fmt.Errorf("%s is required and must be a string", paramName)
	}
	if strings.TrimSpace(value) == "" {
		err := fmt.Errorf("%s cannot be empty", paramName)
		tpe.logger.LogError(err, "parameter", paramName)
		return "", err
	}
	tpe.logger.LogDebug("Extracted parameter", paramName, value)
	return value, nil
}

// OptionalString returns the parameter, or fallback when it is absent or blank.
func (tpe *ToolParameterExtractor) OptionalString(paramName, fallback string) string {
	value := tpe.req.GetString(paramName, "")
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}

package resources

import (
	"fmt"
	"sort"
)

// toolDescriptions contains all tool descriptions as Go string constants
var toolDescriptions = map[string]string{
	"getAuthStatus": "Check authentication status: the auth method in use, whether an access token is available, and when it expires. Use this first when other tools fail with authentication errors.",

	"listNotebooks": "List all OneNote notebooks accessible to the signed-in user. Returns a JSON array of objects with id, name and isConfigDefault (true when the notebook matches the configured default notebook, ONENOTE_DEFAULT_NOTEBOOK_NAME).\n\nUse this when the user asks \"What notebooks do I have?\" or when a notebook name passed to another tool was not found. Other tools take notebook NAMES, not IDs.",

	"getPageContent": "Get the content of one OneNote page addressed by path.\n\n**PATH:** Slash-separated display names below the notebook: section groups (zero or more), then the section, then the page title. Example: \"Journal/2022/2022-05/2022-05-05\" is page \"2022-05-05\" in section \"2022-05\" inside section groups \"Journal\" then \"2022\". Names are matched case-insensitively; when two siblings share a name the first one listed wins. Names containing '/' cannot be addressed.\n\n**NOTEBOOK:** Display name of the notebook. Optional when a default notebook is configured.\n\n**FORMAT:** html (default, OneNote's page HTML), markdown, or text.\n\nFails with a not-found error naming the first path segment that did not match.",

	"getSectionContent": "Get the content of every page in a OneNote section, concatenated in the section's page order.\n\n**PATH:** Slash-separated display names below the notebook: section groups (zero or more), then the section. Example: \"Journal/2022/2022-05\". A single segment names a section directly in the notebook.\n\n**NOTEBOOK:** Display name of the notebook. Optional when a default notebook is configured.\n\n**FORMAT:** html (default), markdown, or text. The conversion is applied to the whole concatenated content.\n\nAn empty section returns empty content.",

	"createPageShareLink": "Create a share link for a OneNote page addressed by path (section groups, section, page title; see getPageContent).\n\nPages are stored inside their section's file, so the link grants access to the containing section and opens it in OneNote.\n\n**linkType:** view (default), edit or embed.\n**scope:** anonymous (default), organization or users. Tenant sharing policy may reject some combinations; the service error is returned as is.",

	"createSectionShareLink": "Create a share link for a OneNote section addressed by path (section groups, then section; see getSectionContent).\n\n**linkType:** view (default), edit or embed.\n**scope:** anonymous (default), organization or users. Tenant sharing policy may reject some combinations; the service error is returned as is.",
}

// GetToolDescription returns the description for a specific tool
func GetToolDescription(toolName string) (string, error) {
	desc, exists := toolDescriptions[toolName]
	if !exists {
		return "", fmt.Errorf("description not found for tool: %s", toolName)
	}
	return desc, nil
}

// MustGetToolDescription returns the description for a tool or panics if not found.
// Only for server initialization, where a missing description is a programming error.
func MustGetToolDescription(toolName string) string {
	desc, exists := toolDescriptions[toolName]
	if !exists {
		panic(fmt.Sprintf("Tool description not found: %s", toolName))
	}
	return desc
}

// ToolNames returns the names of all described tools, sorted.
func ToolNames() []string {
	names := make([]string, 0, len(toolDescriptions))
	for name := range toolDescriptions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

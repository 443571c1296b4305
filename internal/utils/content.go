// content.go - Page content rendering for tool output.
//
// OneNote returns page content as HTML. Tools can hand it back unchanged or
// render it as Markdown or plain text for clients that cannot display HTML.
//
// Usage Example:
//   format, err := utils.ParseContentFormat("markdown")
//   out, err := utils.ConvertHTML(pageHTML, format)

package utils

import (
	"fmt"
	"strings"

	md "github.com/JohannesKaufmann/html-to-markdown"
	"github.com/jaytaylor/html2text"

	"github.com/gebl/onenote-connector/internal/graph"
	"github.com/gebl/onenote-connector/internal/logging"
)

// ContentFormat is the representation a tool returns page content in.
type ContentFormat string

const (
	FormatHTML     ContentFormat = "html"
	FormatMarkdown ContentFormat = "markdown"
	FormatText     ContentFormat = "text"
)

// ContentFormats lists the accepted formats, default first.
var ContentFormats = []string{string(FormatHTML), string(FormatMarkdown), string(FormatText)}

// ParseContentFormat accepts a format name in any case. Empty means HTML.
func ParseContentFormat(s string) (ContentFormat, error) {
	switch f := ContentFormat(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return FormatHTML, nil
	case FormatHTML, FormatMarkdown, FormatText:
		return f, nil
	default:
		return "", fmt.Errorf("%w: unsupported format %q (want html, markdown or text)", graph.ErrInvalidArgument, s)
	}
}

// ConvertHTML renders html in the requested format.
func ConvertHTML(html string, format ContentFormat) (string, error) {
	switch format {
	case FormatHTML, "":
		return html, nil
	case FormatMarkdown:
		return ConvertHTMLToMarkdown(html)
	case FormatText:
		return ConvertHTMLToText(html)
	}
	return "", fmt.Errorf("%w: unsupported format %q", graph.ErrInvalidArgument, string(format))
}

// ConvertHTMLToMarkdown converts OneNote HTML to CommonMark.
func ConvertHTMLToMarkdown(html string) (string, error) {
	converter := md.NewConverter("", true, nil)
	out, err := converter.ConvertString(html)
	if err != nil {
		logging.ToolsLogger.Debug("Markdown conversion failed", "error", err, "html_length", len(html))
		return "", fmt.Errorf("converting HTML to markdown: %w", err)
	}
	return strings.TrimSpace(out), nil
}

// ConvertHTMLToText strips markup, keeping link targets and table layout.
func ConvertHTMLToText(html string) (string, error) {
	out, err := html2text.FromString(html, html2text.Options{PrettyTables: true})
	if err != nil {
		logging.ToolsLogger.Debug("Text conversion failed", "error", err, "html_length", len(html))
		return "", fmt.Errorf("converting HTML to text: %w", err)
	}
	return out, nil
}

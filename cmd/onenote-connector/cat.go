package main

import (
	"context"
	"fmt"
	"io"

	"github.com/gebl/onenote-connector/internal/config"
	"github.com/gebl/onenote-connector/internal/connector"
	"github.com/gebl/onenote-connector/internal/graph"
	"github.com/gebl/onenote-connector/internal/logging"
	"github.com/gebl/onenote-connector/internal/resolve"
	"github.com/gebl/onenote-connector/internal/stream"
	"github.com/gebl/onenote-connector/internal/utils"
)

type catRequest struct {
	Notebook string
	Path     string
	Section  bool
	Format   string
}

// runCat writes a page or section to out. HTML is copied straight from the
// stream; other formats need the whole document to convert.
func runCat(ctx context.Context, conn *connector.Connector, cfg *config.Config, req catRequest, out io.Writer) error {
	path, err := resolve.ParsePath(req.Path)
	if err != nil {
		return err
	}
	notebook := req.Notebook
	if notebook == "" {
		notebook = cfg.NotebookName
	}
	if notebook == "" {
		return fmt.Errorf("%w: -notebook is required (no default notebook configured)", graph.ErrInvalidArgument)
	}
	format, err := utils.ParseContentFormat(req.Format)
	if err != nil {
		return err
	}

	var src stream.Source
	if req.Section {
		src, err = conn.GetSectionContentStream(ctx, notebook, path)
	} else {
		src, err = conn.GetPageContentStream(ctx, notebook, path)
	}
	if err != nil {
		return err
	}

	if format == utils.FormatHTML {
		defer src.Close()
		n, err := io.Copy(out, src)
		logging.MainLogger.Debug("Content written", "bytes", n, "path", path.String())
		return err
	}

	content, err := readContent(src, format)
	if err != nil {
		return err
	}
	_, err = io.WriteString(out, content+"\n")
	return err
}

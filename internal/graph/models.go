// Copyright (c) 2025 Gabriel Lawrence
//
// Licensed under the MIT License. See LICENSE file in the project root for full license information.

package graph

import (
	"github.com/microsoftgraph/msgraph-sdk-go/models"
)

type Notebook struct {
	ID          string `json:"id"`
	DisplayName string `json:"displayName"`
}

type SectionGroup struct {
	ID          string `json:"id"`
	DisplayName string `json:"displayName"`
}

type Section struct {
	ID          string `json:"id"`
	DisplayName string `json:"displayName"`
	WebURL      string `json:"webUrl,omitempty"`
}

type Page struct {
	ID         string `json:"id"`
	Title      string `json:"title"`
	ContentURL string `json:"contentUrl,omitempty"`
	WebURL     string `json:"webUrl,omitempty"`

	// Section is set when the page was reached through a section lookup.
	Section *Section `json:"-"`
}

func NotebookFrom(n models.Notebookable) Notebook {
	return Notebook{ID: deref(n.GetId()), DisplayName: deref(n.GetDisplayName())}
}

func SectionGroupFrom(g models.SectionGroupable) SectionGroup {
	return SectionGroup{ID: deref(g.GetId()), DisplayName: deref(g.GetDisplayName())}
}

func SectionFrom(s models.OnenoteSectionable) Section {
	out := Section{ID: deref(s.GetId()), DisplayName: deref(s.GetDisplayName())}
	if links := s.GetLinks(); links != nil && links.GetOneNoteWebUrl() != nil {
		out.WebURL = deref(links.GetOneNoteWebUrl().GetHref())
	}
	return out
}

func PageFrom(p models.OnenotePageable) Page {
	out := Page{
		ID:         deref(p.GetId()),
		Title:      deref(p.GetTitle()),
		ContentURL: deref(p.GetContentUrl()),
	}
	if links := p.GetLinks(); links != nil && links.GetOneNoteWebUrl() != nil {
		out.WebURL = deref(links.GetOneNoteWebUrl().GetHref())
	}
	return out
}

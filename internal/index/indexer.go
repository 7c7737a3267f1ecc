// Package index maintains project index documents: one markdown note per
// project holding a table of the project's member notes under a "## Notes"
// header. The table is recomputed from vault metadata on every run and
// spliced into the section without disturbing hand-written prose around it.
package index

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"pindex/internal/markdown"
	"pindex/internal/vault"
)

// Frontmatter field names and values with index semantics.
const (
	FieldProject = "project"
	FieldType    = "type"

	TypeIndex = "project_index"
	TypeTop   = "project_top"

	// NotesHeader is the managed section's header text.
	NotesHeader = "Notes"

	// NoteColumn is the first table column, holding the cross-reference.
	NoteColumn = "Note"
)

// Indexer creates and synchronizes project index documents.
type Indexer struct {
	// Store is the vault the indexer reads notes from and writes index
	// documents to.
	Store vault.Store

	// Folder is the vault folder holding index documents.
	Folder string

	// Columns are the frontmatter fields rendered as table columns after
	// the Note column.
	Columns []string

	// Template is an optional vault path of a template used for new index
	// documents instead of the default scaffold.
	Template string

	// Clock returns the current time for template variables. Nil means
	// time.Now.
	Clock func() time.Time
}

func (ix *Indexer) now() time.Time {
	if ix.Clock == nil {
		return time.Now()
	}

	return ix.Clock()
}

// ProjectOf returns the project name a note belongs to. The note must have
// frontmatter with a non-empty string project field.
func (ix *Indexer) ProjectOf(notePath string) (string, error) {
	fields, err := ix.Store.Metadata(notePath)
	if err != nil {
		return "", err
	}

	if len(fields) == 0 {
		return "", fmt.Errorf("%w: %s", ErrNoFrontmatter, notePath)
	}

	project := fields.Get(FieldProject)
	if project.Kind != vault.KindString || project.Str == "" {
		return "", fmt.Errorf("%w: %s", ErrNoProject, notePath)
	}

	return project.Str, nil
}

// CreateForNote ensures the index document for the note's project exists
// and synchronizes its table. Returns the index document's path and the
// project name.
func (ix *Indexer) CreateForNote(notePath string) (string, string, error) {
	project, err := ix.ProjectOf(notePath)
	if err != nil {
		return "", "", err
	}

	indexPath, err := ix.EnsureIndexDocument(project)
	if err != nil {
		return "", "", err
	}

	err = ix.Sync(indexPath, project)
	if err != nil {
		return "", "", err
	}

	return indexPath, project, nil
}

// UpdateForNote synchronizes the existing index document for the note's
// project. Unlike CreateForNote it never creates the document: a missing
// index is reported as ErrIndexNotFound and nothing is written.
func (ix *Indexer) UpdateForNote(notePath string) (string, string, error) {
	project, err := ix.ProjectOf(notePath)
	if err != nil {
		return "", "", err
	}

	indexPath, err := ix.indexPath(project)
	if err != nil {
		return "", "", err
	}

	if ix.Store.Kind(indexPath) != vault.EntryFile {
		return "", "", fmt.Errorf("%w for project %q: %s", ErrIndexNotFound, project, indexPath)
	}

	err = ix.Sync(indexPath, project)
	if err != nil {
		return "", "", err
	}

	return indexPath, project, nil
}

// Sync recomputes the project's table and splices it into the index
// document's Notes section. Prose anywhere in the section is preserved
// verbatim and in order; every existing table line is dropped in favor of
// the freshly rendered table, which lands at the position of the first
// table-line run (or directly after the leading blank line when the
// section had no table). Running Sync twice against unchanged membership
// produces byte-identical text.
func (ix *Indexer) Sync(indexPath, project string) error {
	content, err := ix.Store.Read(indexPath)
	if err != nil {
		return err
	}

	if !markdown.HasHeader(content, NotesHeader, 0) {
		content = markdown.AppendHeader(content, NotesHeader, 0)
	}

	rows, err := ix.Rows(project)
	if err != nil {
		return err
	}

	headers := append([]string{NoteColumn}, ix.Columns...)
	tableLines := markdown.RenderTable(headers, rows, nil)

	_, hadTable := markdown.TableInSection(content, NotesHeader, 0)
	section := markdown.SectionContent(content, NotesHeader, 0)
	body := rebuildSectionBody(section, tableLines, hadTable)

	updated := markdown.ReplaceSectionContent(content, NotesHeader, body, 0)
	if updated == content {
		return nil
	}

	return ix.Store.Write(indexPath, updated)
}

// rebuildSectionBody assembles the new section body: one leading blank
// line, the fresh table at its place, and all non-table lines in their
// original order. A second table-like block later in the section is
// dropped, not merged; sections are expected to hold at most one table.
func rebuildSectionBody(section []string, tableLines []string, hadTable bool) []string {
	body := []string{""}

	if !hadTable {
		body = append(body, tableLines...)
	}

	spliced := !hadTable

	for _, line := range section {
		trimmed := strings.TrimSpace(line)

		// The single leading blank line is already in place.
		if len(body) == 1 && trimmed == "" {
			continue
		}

		if strings.HasPrefix(trimmed, "|") {
			if !spliced {
				body = append(body, tableLines...)

				spliced = true
			}

			continue
		}

		body = append(body, line)
	}

	return body
}

// Rows builds one table row per member note of the project: notes whose
// project field equals the name exactly, excluding index documents
// themselves. Rows are sorted case-insensitively by link target; ties keep
// their original relative order. Notes whose frontmatter cannot be parsed
// are skipped, matching a metadata cache that has no entry for them.
func (ix *Indexer) Rows(project string) ([][]string, error) {
	docs, err := ix.Store.List()
	if err != nil {
		return nil, err
	}

	var rows [][]string

	for _, doc := range docs {
		fields, metaErr := ix.Store.Metadata(doc.Path)
		if metaErr != nil {
			continue
		}

		projectField := fields.Get(FieldProject)
		if projectField.Kind != vault.KindString || projectField.Str != project {
			continue
		}

		docType := fields.Get(FieldType).String()
		if docType == TypeIndex || docType == TypeTop {
			continue
		}

		row := make([]string, 0, len(ix.Columns)+1)
		row = append(row, "[["+doc.Basename()+"]]")

		for _, column := range ix.Columns {
			row = append(row, fields.Get(column).String())
		}

		rows = append(rows, row)
	}

	slices.SortStableFunc(rows, func(a, b []string) int {
		keyA := strings.ToLower(markdown.ExtractLinkTarget(a[0]))
		keyB := strings.ToLower(markdown.ExtractLinkTarget(b[0]))

		return strings.Compare(keyA, keyB)
	})

	return rows, nil
}

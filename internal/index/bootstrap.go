package index

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"pindex/internal/template"
	"pindex/internal/vault"
)

// indexPath returns the vault path of the project's index document.
func (ix *Indexer) indexPath(project string) (string, error) {
	if strings.TrimSpace(ix.Folder) == "" {
		return "", ErrFolderNotConfigured
	}

	return ix.Folder + "/" + FileName(project) + ".md", nil
}

// EnsureIndexDocument returns the path of the project's index document,
// creating the folder chain and the document itself when missing. New
// documents get either the default scaffold or, when a template is
// configured, the template's processed content; either way the document is
// tagged with its type and project fields afterwards.
func (ix *Indexer) EnsureIndexDocument(project string) (string, error) {
	indexPath, err := ix.indexPath(project)
	if err != nil {
		return "", err
	}

	err = ix.Store.EnsureFolder(ix.Folder)
	if err != nil {
		return "", err
	}

	switch ix.Store.Kind(indexPath) {
	case vault.EntryFile:
		return indexPath, nil
	case vault.EntryFolder:
		return "", fmt.Errorf("%w: %s", ErrIndexNotFile, indexPath)
	case vault.EntryNone:
	}

	docType := TypeIndex

	content := scaffold(project)

	if ix.Template != "" {
		templateText, readErr := ix.Store.Read(ix.Template)
		if readErr != nil {
			return "", fmt.Errorf("reading index template: %w", readErr)
		}

		content = template.Process(templateText, map[string]string{
			"title":   project,
			"project": project,
		}, ix.now())
		docType = TypeTop
	}

	_, err = ix.Store.Create(indexPath, content)
	if err != nil {
		return "", err
	}

	// Tag the document even when the template carried its own
	// frontmatter, so the exclusion rule always recognizes it.
	err = ix.Store.SetFields(indexPath, vault.Fields{
		FieldType:    vault.StringValue(docType),
		FieldProject: vault.StringValue(project),
	})
	if err != nil {
		return "", err
	}

	return indexPath, nil
}

// scaffold is the default content for a new index document: type and
// project frontmatter, a title, and an empty Notes section.
func scaffold(project string) string {
	lines := []string{
		"---",
		FieldType + ": " + TypeIndex,
		FieldProject + ": " + yamlScalar(project),
		"---",
		"",
		"# " + project,
		"",
		"## " + NotesHeader,
		"",
	}

	return strings.Join(lines, "\n")
}

// yamlScalar renders a string as a single YAML scalar, quoting it when the
// raw form would not parse back as the same value (project names may hold
// colons or other YAML syntax).
func yamlScalar(s string) string {
	out, err := yaml.Marshal(s)
	if err != nil {
		return s
	}

	return strings.TrimSuffix(string(out), "\n")
}

package note

import "errors"

var (
	// ErrCancelled reports that the user dismissed the template picker or
	// the name prompt. Callers should treat it as a no-op, not a failure.
	ErrCancelled = errors.New("cancelled")

	// ErrNoFrontmatter reports that the parent document carries no
	// frontmatter block at all.
	ErrNoFrontmatter = errors.New("project document has no frontmatter")

	// ErrNoProject reports that the parent document's frontmatter has no
	// usable "project" field.
	ErrNoProject = errors.New(`project document has no "project" field in frontmatter`)

	// ErrNoTemplates reports that no template documents were found to
	// choose from.
	ErrNoTemplates = errors.New("no template documents found")

	// ErrTemplateNotFound reports that an explicitly named template does
	// not exist.
	ErrTemplateNotFound = errors.New("template not found in vault")
)

// Package note creates new vault notes from templates, inheriting metadata
// from a parent project document.
package note

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"pindex/internal/template"
	"pindex/internal/vault"
)

// illegalNameChars are replaced with a dash before the name becomes part of
// a vault path.
var illegalNameChars = regexp.MustCompile(`[/\\:*?"<>|]`)

// Creator builds a note from a template picked by the user. The picker and
// the name prompt are injected so commands can wire interactive prompts
// while tests supply plain functions. Both report ok=false when the user
// cancels.
type Creator struct {
	Store vault.Store

	// Template is an optional pre-chosen template path. When set, the
	// picker is skipped entirely.
	Template string

	// TemplateFolder restricts the picker's candidates to documents under
	// this vault folder. Empty means every markdown document is a
	// candidate.
	TemplateFolder string

	// InheritedFields names the frontmatter keys copied from the parent
	// project document onto the new note.
	InheritedFields []string

	PickTemplate func(candidates []string) (path string, ok bool, err error)
	PromptName   func() (name string, ok bool, err error)

	// Clock supplies the time for template date/time variables. Nil means
	// time.Now.
	Clock func() time.Time
}

func (c *Creator) now() time.Time {
	if c.Clock != nil {
		return c.Clock()
	}

	return time.Now()
}

// CreateFromTop creates a new note next to the parent project document at
// topPath. It picks a template, prompts for a name, substitutes template
// variables (including the parent's inherited fields as strings), writes
// the note into folder, and finally merges the inherited fields into the
// new note's frontmatter with their original values. It returns the new
// note's vault path.
//
// ErrCancelled is returned when the user dismisses either prompt; nothing
// has been written in that case.
func (c *Creator) CreateFromTop(topPath, folder string) (string, error) {
	fields, err := c.Store.Metadata(topPath)
	if err != nil {
		return "", fmt.Errorf("reading project document metadata: %w", err)
	}

	if len(fields) == 0 {
		return "", fmt.Errorf("%w: %s", ErrNoFrontmatter, topPath)
	}

	project := fields.Get("project")
	if project.Kind != vault.KindString || project.Str == "" {
		return "", fmt.Errorf("%w: %s", ErrNoProject, topPath)
	}

	templatePath, err := c.pickTemplate()
	if err != nil {
		return "", err
	}

	name, ok, err := c.PromptName()
	if err != nil {
		return "", fmt.Errorf("prompting for note name: %w", err)
	}

	if !ok || strings.TrimSpace(name) == "" {
		return "", ErrCancelled
	}

	name = strings.TrimSpace(name)

	templateText, err := c.Store.Read(templatePath)
	if err != nil {
		return "", fmt.Errorf("reading template: %w", err)
	}

	vars := map[string]string{
		"title":   name,
		"project": project.Str,
	}

	inherited := vault.Fields{}

	for _, field := range c.InheritedFields {
		value := fields.Get(field)
		if value.IsAbsent() {
			continue
		}

		vars[field] = value.String()
		inherited[field] = value
	}

	content := template.Process(templateText, vars, c.now())

	notePath := c.newNotePath(name, folder)

	_, err = c.Store.Create(notePath, content)
	if err != nil {
		return "", fmt.Errorf("creating note: %w", err)
	}

	if len(inherited) > 0 {
		err = c.Store.SetFields(notePath, inherited)
		if err != nil {
			return "", fmt.Errorf("inheriting fields: %w", err)
		}
	}

	return notePath, nil
}

// pickTemplate resolves the pre-chosen template or gathers candidate
// documents and runs the injected picker.
func (c *Creator) pickTemplate() (string, error) {
	if c.Template != "" {
		if c.Store.Kind(c.Template) != vault.EntryFile {
			return "", fmt.Errorf("%w: %s", ErrTemplateNotFound, c.Template)
		}

		return c.Template, nil
	}

	docs, err := c.Store.List()
	if err != nil {
		return "", fmt.Errorf("listing templates: %w", err)
	}

	var candidates []string

	for _, doc := range docs {
		if c.TemplateFolder != "" && !strings.HasPrefix(doc.Path, c.TemplateFolder) {
			continue
		}

		candidates = append(candidates, doc.Path)
	}

	if len(candidates) == 0 {
		return "", fmt.Errorf("%w (folder %q)", ErrNoTemplates, c.TemplateFolder)
	}

	path, ok, err := c.PickTemplate(candidates)
	if err != nil {
		return "", fmt.Errorf("picking template: %w", err)
	}

	if !ok {
		return "", ErrCancelled
	}

	return path, nil
}

// newNotePath sanitizes the chosen name into a vault path under folder and
// appends an incrementing numeric suffix until the path is free.
func (c *Creator) newNotePath(name, folder string) string {
	base := illegalNameChars.ReplaceAllString(name, "-")
	base = strings.TrimSuffix(base, ".md")

	join := func(file string) string {
		if folder == "" {
			return file
		}

		return folder + "/" + file
	}

	notePath := join(base + ".md")

	for counter := 1; c.Store.Kind(notePath) != vault.EntryNone; counter++ {
		notePath = join(fmt.Sprintf("%s %d.md", base, counter))
	}

	return notePath
}

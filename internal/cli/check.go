package cli

import (
	"context"
	"fmt"
	"strings"

	flag "github.com/spf13/pflag"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"

	"pindex/internal/index"
	"pindex/internal/markdown"
)

// CheckCmd returns the check command.
func CheckCmd(app *App) *Command {
	fs := flag.NewFlagSet("check", flag.ContinueOnError)

	return &Command{
		Flags: fs,
		Usage: "check [<project>...]",
		Short: "Verify index documents against live note metadata",
		Long: `Parse every index document (or only the named projects') and compare
its Notes table against the notes currently tagged with the project.
Stale rows, missing notes, and structural problems are reported as
warnings; any warning makes the command exit non-zero.`,
		Exec: func(ctx context.Context, o *IO, args []string) error {
			return execCheck(ctx, o, app, args)
		},
	}
}

func execCheck(ctx context.Context, o *IO, app *App, args []string) error {
	docs, err := app.Store.List()
	if err != nil {
		return fmt.Errorf("list vault: %w", err)
	}

	only := map[string]bool{}
	for _, project := range args {
		only[project] = true
	}

	ix := app.Indexer()
	checked := 0

	for _, doc := range docs {
		if err := ctx.Err(); err != nil {
			return err
		}

		if !strings.HasPrefix(doc.Path, app.Cfg.IndexFolder+"/") {
			continue
		}

		fields, metaErr := app.Store.Metadata(doc.Path)
		if metaErr != nil {
			o.Warn(
				fmt.Sprintf("%s: %v", doc.Path, metaErr),
				"fix the index document's frontmatter",
			)

			continue
		}

		docType := fields.Get(index.FieldType).String()
		if docType != index.TypeIndex && docType != index.TypeTop {
			continue
		}

		project := fields.Get(index.FieldProject).String()
		if project == "" {
			o.Warn(doc.Path+": index document has no project field", "add a project field or delete the file")

			continue
		}

		if len(only) > 0 && !only[project] {
			continue
		}

		checkIndexDocument(o, app, ix, doc.Path, project)

		checked++
	}

	o.Printf("checked %d index document(s)\n", checked)

	return nil
}

// checkIndexDocument compares one index document's rendered table against
// the rows the synchronizer would produce right now.
func checkIndexDocument(o *IO, app *App, ix *index.Indexer, indexPath, project string) {
	content, err := app.Store.Read(indexPath)
	if err != nil {
		o.Warn(fmt.Sprintf("%s: %v", indexPath, err), "check vault permissions")

		return
	}

	tables, hasNotes := notesSectionTables([]byte(content))
	if !hasNotes {
		o.Warn(indexPath+": no \""+index.NotesHeader+"\" section", "run pindex index on a note of project "+project)

		return
	}

	if len(tables) == 0 {
		o.Warn(indexPath+": Notes section has no table", "run pindex index on a note of project "+project)

		return
	}

	if len(tables) > 1 {
		o.Warn(indexPath+": Notes section has more than one table", "remove the extra tables; only the first is maintained")
	}

	have := map[string]bool{}
	for _, target := range tables[0] {
		have[target] = true
	}

	rows, err := ix.Rows(project)
	if err != nil {
		o.Warn(fmt.Sprintf("%s: %v", indexPath, err), "check vault permissions")

		return
	}

	want := map[string]bool{}
	for _, row := range rows {
		want[markdown.ExtractLinkTarget(row[0])] = true
	}

	for target := range have {
		if !want[target] {
			o.Warn(
				fmt.Sprintf("%s: stale row [[%s]]", indexPath, target),
				"run pindex index to resynchronize",
			)
		}
	}

	for target := range want {
		if !have[target] {
			o.Warn(
				fmt.Sprintf("%s: missing row [[%s]]", indexPath, target),
				"run pindex index to resynchronize",
			)
		}
	}
}

// notesSectionTables parses the document with GFM tables enabled and
// returns, for every table inside the level-2 Notes section, the link
// targets of its first column. hasNotes reports whether the section header
// exists at all.
func notesSectionTables(source []byte) (tables [][]string, hasNotes bool) {
	parsed := goldmark.New(goldmark.WithExtensions(extension.GFM)).
		Parser().
		Parse(text.NewReader(source))

	inNotes := false

	for node := parsed.FirstChild(); node != nil; node = node.NextSibling() {
		if heading, ok := node.(*ast.Heading); ok {
			if heading.Level <= markdown.DefaultHeaderLevel {
				inNotes = heading.Level == markdown.DefaultHeaderLevel &&
					nodeText(heading, source) == index.NotesHeader
				if inNotes {
					hasNotes = true
				}
			}

			continue
		}

		table, ok := node.(*east.Table)
		if !ok || !inNotes {
			continue
		}

		tables = append(tables, tableLinkTargets(table, source))
	}

	return tables, hasNotes
}

// tableLinkTargets extracts the first-column link target of every data row.
func tableLinkTargets(table *east.Table, source []byte) []string {
	var targets []string

	for row := table.FirstChild(); row != nil; row = row.NextSibling() {
		tableRow, ok := row.(*east.TableRow)
		if !ok {
			// TableHeader carries the column names, not data.
			continue
		}

		cell := tableRow.FirstChild()
		if cell == nil {
			continue
		}

		target := markdown.ExtractLinkTarget(nodeText(cell, source))
		if target != "" {
			targets = append(targets, target)
		}
	}

	return targets
}

// nodeText concatenates the raw text segments under a node.
func nodeText(node ast.Node, source []byte) string {
	var builder strings.Builder

	_ = ast.Walk(node, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}

		if textNode, ok := n.(*ast.Text); ok {
			builder.Write(textNode.Segment.Value(source))
		}

		return ast.WalkContinue, nil
	})

	return builder.String()
}

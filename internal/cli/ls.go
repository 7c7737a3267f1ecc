package cli

import (
	"context"
	"fmt"
	"strings"

	runewidth "github.com/mattn/go-runewidth"
	flag "github.com/spf13/pflag"

	"pindex/internal/index"
)

// LsCmd returns the ls command.
func LsCmd(app *App) *Command {
	fs := flag.NewFlagSet("ls", flag.ContinueOnError)
	fs.String("project", "", "Only notes of this project")
	fs.String("type", "", "Only notes with this type field")
	fs.Bool("indexes", false, "Only index documents (type project_index/project_top)")

	return &Command{
		Flags: fs,
		Usage: "ls [flags]",
		Short: "List vault notes with their project metadata",
		Long: `List every markdown note in the vault with its project, type, and the
configured table columns. Output is sorted by path.`,
		Exec: func(ctx context.Context, o *IO, _ []string) error {
			return execLs(ctx, o, app, fs)
		},
	}
}

func execLs(ctx context.Context, o *IO, app *App, fs *flag.FlagSet) error {
	projectFilter, _ := fs.GetString("project")
	typeFilter, _ := fs.GetString("type")
	indexesOnly, _ := fs.GetBool("indexes")

	docs, err := app.Store.List()
	if err != nil {
		return fmt.Errorf("list vault: %w", err)
	}

	header := append([]string{"PATH", "PROJECT", "TYPE"}, upper(app.Cfg.Columns)...)
	table := [][]string{header}

	for _, doc := range docs {
		if err := ctx.Err(); err != nil {
			return err
		}

		fields, metaErr := app.Store.Metadata(doc.Path)
		if metaErr != nil {
			o.Warn(
				fmt.Sprintf("%s: %v", doc.Path, metaErr),
				"fix the note's frontmatter or remove the file",
			)

			continue
		}

		docType := fields.Get(index.FieldType).String()
		isIndex := docType == index.TypeIndex || docType == index.TypeTop

		if indexesOnly && !isIndex {
			continue
		}

		if projectFilter != "" && fields.Get(index.FieldProject).String() != projectFilter {
			continue
		}

		if typeFilter != "" && docType != typeFilter {
			continue
		}

		row := []string{doc.Path, fields.Get(index.FieldProject).String(), docType}

		for _, column := range app.Cfg.Columns {
			row = append(row, fields.Get(column).String())
		}

		table = append(table, row)
	}

	if len(table) == 1 {
		return nil
	}

	for _, line := range alignColumns(table) {
		o.Println(line)
	}

	return nil
}

func upper(names []string) []string {
	out := make([]string, len(names))

	for i, name := range names {
		out[i] = strings.ToUpper(name)
	}

	return out
}

// alignColumns pads every cell to its column's display width. Width is
// measured in terminal cells, not bytes, so wide runes line up.
func alignColumns(table [][]string) []string {
	widths := make([]int, len(table[0]))

	for _, row := range table {
		for i, cell := range row {
			if w := runewidth.StringWidth(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}

	lines := make([]string, 0, len(table))

	for _, row := range table {
		var builder strings.Builder

		for i, cell := range row {
			if i > 0 {
				builder.WriteString("  ")
			}

			if i == len(row)-1 {
				builder.WriteString(cell)

				continue
			}

			builder.WriteString(runewidth.FillRight(cell, widths[i]))
		}

		lines = append(lines, strings.TrimRight(builder.String(), " "))
	}

	return lines
}

package cli

import (
	"context"
	"errors"
	"fmt"

	flag "github.com/spf13/pflag"

	"pindex/internal/vault"
)

var (
	errNotePathRequired = errors.New("note path is required")
	errNotMarkdown      = errors.New("not a markdown note")
	errNoteNotFound     = errors.New("note not found in vault")
)

// IndexCmd returns the index command.
func IndexCmd(app *App) *Command {
	fs := flag.NewFlagSet("index", flag.ContinueOnError)

	return &Command{
		Flags: fs,
		Usage: "index <note>",
		Short: "Create or update the project index for a note",
		Long: `Read the note's "project" frontmatter field, create the project's
index document if it does not exist yet, and synchronize its Notes table
with every note of that project. Prints the index document's path.

The note path is relative to the vault root.`,
		Exec: func(_ context.Context, o *IO, args []string) error {
			return execIndex(o, app, args, true)
		},
	}
}

// UpdateCmd returns the update command.
func UpdateCmd(app *App) *Command {
	fs := flag.NewFlagSet("update", flag.ContinueOnError)

	return &Command{
		Flags: fs,
		Usage: "update <note>",
		Short: "Update an existing project index for a note",
		Long: `Like index, but never creates the index document: if the note's
project has no index yet the command fails.`,
		Exec: func(_ context.Context, o *IO, args []string) error {
			return execIndex(o, app, args, false)
		},
	}
}

func execIndex(o *IO, app *App, args []string, create bool) error {
	notePath, err := noteArg(app, args)
	if err != nil {
		return err
	}

	ix := app.Indexer()

	var indexPath string

	if create {
		indexPath, _, err = ix.CreateForNote(notePath)
	} else {
		indexPath, _, err = ix.UpdateForNote(notePath)
	}

	if err != nil {
		return err
	}

	o.Println(indexPath)

	return nil
}

// noteArg validates the single note-path argument shared by index and
// update.
func noteArg(app *App, args []string) (string, error) {
	if len(args) == 0 || args[0] == "" {
		return "", errNotePathRequired
	}

	notePath := args[0]

	if !vault.IsMarkdown(notePath) {
		return "", fmt.Errorf("%w: %s", errNotMarkdown, notePath)
	}

	if app.Store.Kind(notePath) != vault.EntryFile {
		return "", fmt.Errorf("%w: %s", errNoteNotFound, notePath)
	}

	return notePath, nil
}

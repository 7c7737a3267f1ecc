package cli

import (
	"context"
	"errors"
	"path"

	flag "github.com/spf13/pflag"

	"pindex/internal/note"
)

// NewCmd returns the new command.
func NewCmd(app *App) *Command {
	fs := flag.NewFlagSet("new", flag.ContinueOnError)
	fs.StringP("template", "t", "", "Template note path (skips the picker)")
	fs.StringP("name", "n", "", "New note name (skips the prompt)")
	fs.String("folder", "", "Destination folder (default: the project document's folder)")

	return &Command{
		Flags: fs,
		Usage: "new <project-top> [flags]",
		Short: "Create a note from a template under a project",
		Long: `Create a new note from a template, inheriting configured frontmatter
fields from the given project document. Without --template or --name the
command prompts interactively. Prints the new note's path.`,
		Exec: func(_ context.Context, o *IO, args []string) error {
			return execNew(o, app, fs, args)
		},
	}
}

func execNew(o *IO, app *App, fs *flag.FlagSet, args []string) error {
	topPath, err := noteArg(app, args)
	if err != nil {
		return err
	}

	folder, _ := fs.GetString("folder")
	if !fs.Changed("folder") {
		folder = path.Dir(topPath)
		if folder == "." {
			folder = ""
		}
	}

	templateFlag, _ := fs.GetString("template")

	creator := &note.Creator{
		Store:           app.Store,
		Template:        templateFlag,
		TemplateFolder:  app.Cfg.TemplateFolder,
		InheritedFields: app.Cfg.InheritedFields,
		PickTemplate: func(candidates []string) (string, bool, error) {
			return pickTemplateInteractive(o, candidates)
		},
		PromptName: namePrompt(fs),
	}

	notePath, err := creator.CreateFromTop(topPath, folder)
	if errors.Is(err, note.ErrCancelled) {
		o.ErrPrintln("cancelled")

		return nil
	}

	if err != nil {
		return err
	}

	o.Println(notePath)

	return nil
}

// namePrompt resolves --name when given, otherwise prompts.
func namePrompt(fs *flag.FlagSet) func() (string, bool, error) {
	return func() (string, bool, error) {
		if fs.Changed("name") {
			name, _ := fs.GetString("name")

			return name, name != "", nil
		}

		return promptLine("name> ", nil)
	}
}

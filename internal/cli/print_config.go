package cli

import (
	"context"
	"strings"

	flag "github.com/spf13/pflag"
)

// PrintConfigCmd returns the print-config command.
func PrintConfigCmd(app *App) *Command {
	return &Command{
		Flags: flag.NewFlagSet("print-config", flag.ContinueOnError),
		Usage: "print-config",
		Short: "Show resolved configuration",
		Long:  "Display the effective configuration and which files it was loaded from.",
		Exec: func(_ context.Context, io *IO, _ []string) error {
			return execPrintConfig(io, app)
		},
	}
}

func execPrintConfig(io *IO, app *App) error {
	cfg := app.Cfg

	io.Println("effective_cwd=" + cfg.EffectiveCwd)
	io.Println("vault=" + cfg.VaultAbs)
	io.Println("index_folder=" + cfg.IndexFolder)
	io.Println("columns=" + strings.Join(cfg.Columns, ","))
	io.Println("template_folder=" + cfg.TemplateFolder)

	if cfg.IndexTemplate() != "" {
		io.Println("template=" + cfg.IndexTemplate())
	}

	if len(cfg.InheritedFields) > 0 {
		io.Println("inherited_fields=" + strings.Join(cfg.InheritedFields, ","))
	}

	io.Println("")
	io.Println("# sources")

	if cfg.Sources.Global == "" && cfg.Sources.Project == "" {
		io.Println("(defaults only)")
	} else {
		if cfg.Sources.Global != "" {
			io.Println("global_config=" + cfg.Sources.Global)
		}

		if cfg.Sources.Project != "" {
			io.Println("project_config=" + cfg.Sources.Project)
		}
	}

	return nil
}

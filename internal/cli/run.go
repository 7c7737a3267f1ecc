package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"pindex/internal/config"
	"pindex/internal/index"
	"pindex/internal/vault"
)

var (
	errFlagRequiresArg = errors.New("flag requires an argument")
	errUnknownFlag     = errors.New("unknown flag")
)

const (
	minArgs      = 2
	consumedOne  = 1
	consumedTwo  = 2
	consumedNone = 0
	helpFlag     = "--help"
)

// App bundles the resolved configuration and the vault store for the
// command implementations.
type App struct {
	Cfg   config.Config
	Store *vault.DirStore
}

// Indexer builds the synchronizer from the app's configuration.
func (a *App) Indexer() *index.Indexer {
	return &index.Indexer{
		Store:    a.Store,
		Folder:   a.Cfg.IndexFolder,
		Columns:  a.Cfg.Columns,
		Template: a.Cfg.IndexTemplate(),
	}
}

// Run is the main entry point. Returns exit code.
//
// sigCh, when non-nil, cancels the command context on the first signal so
// long-running vault walks can stop early.
func Run(_ io.Reader, out io.Writer, errOut io.Writer, args []string, env map[string]string, sigCh <-chan os.Signal) int {
	if len(args) < minArgs {
		printUsage(out)

		return 0
	}

	flags, err := parseGlobalFlags(args[1:])
	if err != nil {
		fprintln(errOut, "error:", err)

		return 1
	}

	cfg, err := config.Load(config.LoadInput{
		WorkDirOverride: flags.workDir,
		ConfigPath:      flags.configPath,
		VaultOverride:   flags.vault,
		Env:             env,
	})
	if err != nil {
		fprintln(errOut, "error:", err)

		return 1
	}

	if len(flags.remaining) == 0 {
		printUsage(out)

		return 0
	}

	name := flags.remaining[0]
	if name == "-h" || name == helpFlag {
		printUsage(out)

		return 0
	}

	app := &App{
		Cfg:   cfg,
		Store: vault.NewDirStore(cfg.VaultAbs),
	}

	cmd := lookupCommand(app, name)
	if cmd == nil {
		fprintln(errOut, "error: unknown command:", name)
		printUsage(errOut)

		return 1
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if sigCh != nil {
		go func() {
			<-sigCh
			cancel()
		}()
	}

	ioCtx := NewIO(out, errOut)

	code := cmd.Run(ctx, ioCtx, flags.remaining[1:])
	if code != 0 {
		return code
	}

	flushErr := app.Store.FlushCache()
	if flushErr != nil {
		ioCtx.Warn(
			fmt.Sprintf("cannot save metadata cache: %v", flushErr),
			"check vault permissions or delete "+vault.CacheFileName,
		)
	}

	return ioCtx.Finish()
}

func lookupCommand(app *App, name string) *Command {
	for _, cmd := range commands(app) {
		if cmd.Name() == name {
			return cmd
		}
	}

	return nil
}

func commands(app *App) []*Command {
	return []*Command{
		IndexCmd(app),
		UpdateCmd(app),
		NewCmd(app),
		LsCmd(app),
		CheckCmd(app),
		PrintConfigCmd(app),
	}
}

type globalFlags struct {
	workDir    string
	configPath string
	vault      string
	remaining  []string
}

func parseGlobalFlags(args []string) (globalFlags, error) {
	var flags globalFlags

	idx := 0
	for idx < len(args) {
		consumed, err := parseFlag(args, idx, &flags)
		if err != nil {
			return globalFlags{}, err
		}

		if consumed == 0 {
			// Not a flag, this is the command
			flags.remaining = args[idx:]

			break
		}

		idx += consumed
	}

	return flags, nil
}

// parseFlag tries to parse a flag at args[idx]. Returns number of args consumed (0 if not a flag).
func parseFlag(args []string, idx int, flags *globalFlags) (int, error) {
	arg := args[idx]

	// -C/--cwd flag (work directory)
	if (arg == "-C" || arg == "--cwd") && idx+1 < len(args) {
		flags.workDir = args[idx+1]

		return consumedTwo, nil
	}

	if after, ok := strings.CutPrefix(arg, "-C"); ok {
		flags.workDir = after

		return consumedOne, nil
	}

	if after, ok := strings.CutPrefix(arg, "--cwd="); ok {
		flags.workDir = after

		return consumedOne, nil
	}

	// -c/--config flag
	if arg == "-c" || arg == "--config" {
		if idx+1 >= len(args) {
			return consumedNone, fmt.Errorf("%w: %s", errFlagRequiresArg, arg)
		}

		flags.configPath = args[idx+1]

		return consumedTwo, nil
	}

	if after, ok := strings.CutPrefix(arg, "--config="); ok {
		flags.configPath = after

		return consumedOne, nil
	}

	// --vault flag
	if arg == "--vault" {
		if idx+1 >= len(args) {
			return consumedNone, fmt.Errorf("%w: %s", errFlagRequiresArg, arg)
		}

		flags.vault = args[idx+1]

		return consumedTwo, nil
	}

	if after, ok := strings.CutPrefix(arg, "--vault="); ok {
		flags.vault = after

		return consumedOne, nil
	}

	// -h/--help flags
	if arg == "-h" || arg == helpFlag {
		flags.remaining = []string{helpFlag}

		return len(args) - idx, nil
	}

	// Unknown flag
	if strings.HasPrefix(arg, "-") && arg != "-" {
		return consumedNone, fmt.Errorf("%w: %s", errUnknownFlag, arg)
	}

	// Not a flag
	return consumedNone, nil
}

func fprintln(w io.Writer, a ...any) {
	_, _ = fmt.Fprintln(w, a...)
}

func printUsage(writer io.Writer) {
	fprintln(writer, `pindex - project index maintenance for markdown vaults

Usage: pindex [options] <command> [args]

Options:
  -C, --cwd <dir>    Run as if started in <dir>
  -c, --config       Use specified config file
      --vault <dir>  Vault root (overrides config)

Commands:`)

	for _, cmd := range commands(&App{}) {
		fprintln(writer, cmd.HelpLine())
	}
}

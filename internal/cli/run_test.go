package cli_test

import (
	"strings"
	"testing"

	"pindex/internal/cli"
)

func Test_No_Args_Prints_Usage(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)

	stdout, _, exitCode := c.Run()
	if got, want := exitCode, 0; got != want {
		t.Errorf("exitCode=%d, want=%d", got, want)
	}

	cli.AssertContains(t, stdout, "Usage: pindex")
	cli.AssertContains(t, stdout, "index <note>")
	cli.AssertContains(t, stdout, "print-config")
}

func Test_Unknown_Command(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)

	stderr := c.MustFail("frobnicate")
	cli.AssertContains(t, stderr, "unknown command: frobnicate")
}

func Test_Unknown_Global_Flag(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)

	stderr := c.MustFail("--bogus", "ls")
	cli.AssertContains(t, stderr, "unknown flag")
}

func Test_Global_Flag_Missing_Arg(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)

	stderr := c.MustFail("--vault")
	cli.AssertContains(t, stderr, "flag requires an argument")
}

func Test_Command_Help(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)

	stdout := c.MustRun("new", "--help")
	cli.AssertContains(t, stdout, "Usage: pindex new <project-top>")
	cli.AssertContains(t, stdout, "--template")
}

func Test_Print_Config(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	c.WriteNote(".pindex.json", `{"index_folder": "idx", "columns": ["status"]}`)

	stdout := c.MustRun("print-config")

	cli.AssertContains(t, stdout, "index_folder=idx")
	cli.AssertContains(t, stdout, "columns=status")
	cli.AssertContains(t, stdout, "project_config=")

	if !strings.Contains(stdout, "vault="+c.Dir) {
		t.Errorf("vault should resolve to the temp dir\noutput:\n%s", stdout)
	}
}

func Test_Invalid_Config_Fails(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	c.WriteNote(".pindex.json", `{"index_folder": `)

	stderr := c.MustFail("ls")
	cli.AssertContains(t, stderr, "invalid config file")
}

package cli_test

import (
	"testing"

	"pindex/internal/cli"
)

func Test_Check_Clean_Index(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	c.WriteNote("one.md", "---\nproject: Acme\nstatus: open\n---\n")
	c.MustRun("index", "one.md")

	stdout := c.MustRun("check")
	cli.AssertContains(t, stdout, "checked 1 index document(s)")
}

func Test_Check_Reports_Missing_Row(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	c.WriteNote("one.md", "---\nproject: Acme\n---\n")
	c.MustRun("index", "one.md")

	// A new note appears without the index being resynchronized.
	c.WriteNote("two.md", "---\nproject: Acme\n---\n")

	stdout, stderr, exitCode := c.Run("check")
	if got, want := exitCode, 1; got != want {
		t.Errorf("exitCode=%d, want=%d", got, want)
	}

	cli.AssertContains(t, stderr, "missing row [[two]]")
	cli.AssertContains(t, stdout, "checked 1 index document(s)")
}

func Test_Check_Reports_Stale_Row(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	c.WriteNote("one.md", "---\nproject: Acme\n---\n")
	c.MustRun("index", "one.md")

	// The note leaves the project without the index being updated.
	c.WriteNote("one.md", "---\nproject: Other\n---\n")

	_, stderr, exitCode := c.Run("check", "Acme")
	if got, want := exitCode, 1; got != want {
		t.Errorf("exitCode=%d, want=%d", got, want)
	}

	cli.AssertContains(t, stderr, "stale row [[one]]")
}

func Test_Check_Reports_Missing_Notes_Section(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	c.WriteNote("projects/Acme.md", "---\ntype: project_index\nproject: Acme\n---\n\n# Acme\n")

	_, stderr, exitCode := c.Run("check")
	if got, want := exitCode, 1; got != want {
		t.Errorf("exitCode=%d, want=%d", got, want)
	}

	cli.AssertContains(t, stderr, `no "Notes" section`)
}

func Test_Check_Filters_By_Project(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	c.WriteNote("one.md", "---\nproject: Acme\n---\n")
	c.WriteNote("two.md", "---\nproject: Beta\n---\n")
	c.MustRun("index", "one.md")
	c.MustRun("index", "two.md")

	// Break Beta's index, then check only Acme.
	c.WriteNote("two.md", "---\nproject: Gone\n---\n")

	stdout := c.MustRun("check", "Acme")
	cli.AssertContains(t, stdout, "checked 1 index document(s)")
}

func Test_Check_Ignores_Non_Index_Documents(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	c.WriteNote("projects/readme.md", "# Just a note in the folder\n")

	stdout := c.MustRun("check")
	cli.AssertContains(t, stdout, "checked 0 index document(s)")
}

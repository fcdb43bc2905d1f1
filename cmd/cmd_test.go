package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const mitLicense = `[{"license":"MIT","url":"https://opensource.org/licenses/MIT"}]`

type cli struct {
	t    *testing.T
	root string
}

func newCLI(t *testing.T) *cli {
	return &cli{t: t, root: t.TempDir()}
}

func (c *cli) run(stdin string, args ...string) (string, error) {
	c.t.Helper()
	cmd := RootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(append([]string{"--config", filepath.Join(c.root, "fgdb.yaml"), "--root", c.root, "--log-level", "error"}, args...))
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func (c *cli) mustRun(stdin string, args ...string) string {
	c.t.Helper()
	out, err := c.run(stdin, args...)
	require.NoError(c.t, err, out)
	return out
}

func TestConfigInit(t *testing.T) {
	c := newCLI(t)
	path := filepath.Join(c.root, "fgdb.yaml")
	out := c.mustRun("", "config", "init", path)
	assert.Contains(t, out, "wrote")
	assert.FileExists(t, path)

	_, err := c.run("", "config", "init", path)
	assert.Error(t, err, "existing file is kept")

	// The written file is a valid configuration.
	c.mustRun("", "init")
}

func TestInitAndCounts(t *testing.T) {
	c := newCLI(t)
	assert.Contains(t, c.mustRun("", "init"), "initialized")

	out := c.mustRun("", "counts", "--env", "test1")
	assert.Regexp(t, `licenses\s+2`, out)
	out = c.mustRun("", "counts")
	assert.Regexp(t, `licenses\s+0`, out)

	_, err := c.run("", "counts", "--env", "qa")
	assert.ErrorContains(t, err, "unknown environment")
}

func TestExportImport(t *testing.T) {
	c := newCLI(t)
	c.mustRun("", "init")

	out := c.mustRun("", "export", "--env", "test2", "--table", "licenses")
	var rows []map[string]string
	require.NoError(t, json.Unmarshal([]byte(out), &rows))
	assert.Len(t, rows, 2)

	file := filepath.Join(c.root, "licenses.json")
	c.mustRun("", "export", "-e", "test2", "-t", "licenses", "-o", file)
	assert.FileExists(t, file)

	out = c.mustRun("", "import", "--env", "prod", "--table", "licenses", "--in", file)
	assert.Contains(t, out, "inserted 2 rows into licenses (prod)")
	out = c.mustRun(mitLicense, "import", "--table", "licenses")
	assert.Contains(t, out, "inserted 1 rows")

	_, err := c.run("", "export", "--env", "prod")
	assert.ErrorContains(t, err, `"table" not set`)
	_, err = c.run("", "export", "--table", "gems")
	assert.ErrorContains(t, err, "unknown table")
}

func TestPartial(t *testing.T) {
	c := newCLI(t)
	out := c.mustRun(mitLicense, "partial", "--table", "licenses")
	assert.JSONEq(t, mitLicense, out)
}

func TestPublishAndUpdate(t *testing.T) {
	c := newCLI(t)
	c.mustRun("", "init")

	_, err := c.run("", "update", "--policy", "sometimes")
	assert.ErrorContains(t, err, "unknown update policy")
	assert.Contains(t, c.mustRun("", "update", "--policy", "skip"), "up to date")

	assert.Contains(t, c.mustRun("", "publish", "--env", "test4"), "published 11 files")
	assert.Regexp(t, `licenses\s+2`, c.mustRun("", "update"))
	assert.Contains(t, c.mustRun("", "update"), "up to date")
	assert.Regexp(t, `licenses\s+2`, c.mustRun("", "update", "--policy", "force"))
	assert.Regexp(t, `licenses\s+2`, c.mustRun("", "counts", "--env", "prod"))
}

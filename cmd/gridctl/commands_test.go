package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

const cliExport = `{
  "meta": {"sport": "basketball"},
  "teams": [
    {"tid": 0, "abbrev": "AAA", "region": "Alpha", "name": "Ants"},
    {"tid": 1, "abbrev": "BBB", "region": "Beta", "name": "Bees"}
  ],
  "players": [
    {"pid": 1, "name": "Ada Scorer", "tid": 0,
     "awards": [{"season": 2001, "type": "Most Valuable Player"}],
     "stats": [{"season": 2001, "tid": 0, "gp": 70, "pts": 1800}]},
    {"pid": 2, "name": "Bo Scorer", "tid": 1,
     "stats": [{"season": 2001, "tid": 0, "gp": 50, "pts": 400}, {"season": 2002, "tid": 1, "gp": 60, "pts": 500}]}
  ]
}`

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "league.json")
	require.NoError(t, os.WriteFile(path, []byte(cliExport), 0o600))

	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append(args, "--file", path, "--log-level", "error"))
	err := cmd.Execute()
	return out.String(), err
}

func TestSummaryCommand(t *testing.T) {
	out, err := runCLI(t, "summary")
	require.NoError(t, err)
	require.Contains(t, out, "players:  2")
	require.Contains(t, out, "seasons:  2001-2002")
	require.Contains(t, out, "AAA")
}

func TestIntersectCommand(t *testing.T) {
	out, err := runCLI(t, "intersect", "--a", "team:0", "--b", "team:1")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Equal(t, []string{"team:0|team:1\t1", "2"}, lines)

	out, err = runCLI(t, "intersect", "--a", "team:0", "--b", "team:1", "--count")
	require.NoError(t, err)
	require.Equal(t, "team:0|team:1\t1", strings.TrimSpace(out))

	_, err = runCLI(t, "intersect", "--a", "bogus", "--b", "team:1")
	require.Error(t, err)
}

func TestSearchCommand(t *testing.T) {
	out, err := runCLI(t, "search", "scorer")
	require.NoError(t, err)
	require.Contains(t, out, "Ada Scorer")
	require.Contains(t, out, "Bo Scorer")
}

func TestPlayerCommand(t *testing.T) {
	out, err := runCLI(t, "player", "--pid", "2")
	require.NoError(t, err)
	require.Contains(t, out, "2 Bo Scorer")
	require.Contains(t, out, "seasons: 2")

	_, err = runCLI(t, "player", "--pid", "99")
	require.Error(t, err)
}

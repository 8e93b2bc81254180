package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aparna-bhatt/nodedetails"
	"github.com/fatih/color"
	"github.com/stretchr/testify/require"
)

const testFeed = `
nodes:
  - id: 1
    status: finishedSuccessfully
    start_date: "2024-01-01T00:00:00Z"
    end_date: "2024-01-02T01:02:03Z"
    plugin_name: pl-dircopy
    plugin_version: "2.1.1"
    parameters:
      - param_name: dir
        value: "/data"
  - id: 2
    status: started
    status_labels: ["Unknown", "Syncing data from compute environment"]
    start_date: "2024-01-03T00:00:00Z"
    plugin_name: pl-orphan
    plugin_version: "0.1"
plugins:
  - name: pl-dircopy
    version: "2.1.1"
    dock_image: fnndsc/pl-dircopy:2.1.1
    selfexec: dircopy
    parameters:
      - name: dir
        flag: --dir
`

func writeFeed(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "feed.yaml")
	require.NoError(t, os.WriteFile(path, []byte(testFeed), 0644))
	return path
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	color.NoColor = true

	var out bytes.Buffer
	root := NewRootCmd(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestShowCommand(t *testing.T) {
	feed := writeFeed(t)

	out, err := run(t, "--feed", feed, "--retries", "0", "show", "1")
	require.NoError(t, err)
	require.Contains(t, out, "pl-dircopy v. 2.1.1\n")
	require.Contains(t, out, "FinishedSuccessfully")
	require.Contains(t, out, "01 Jan 2024 @ 00:00")
	require.Contains(t, out, "Total Runtime: 1 day, 1 hr, 2 min, 3 sec")
	require.Contains(t, out, "Actions        add node\n")
	require.Contains(t, out, "Docker Command for pl-dircopy v. 2.1.1:\n")
	require.Contains(t, out, "--dir /data \\\n/incoming/outgoing")
}

func TestShowWithoutPlugin(t *testing.T) {
	feed := writeFeed(t)

	out, err := run(t, "--feed", feed, "--retries", "0", "show", "2")
	require.NoError(t, err)
	require.Contains(t, out, "Syncing Data")
	require.NotContains(t, out, "Total Runtime")
	require.Contains(t, out, "(not available)")
}

func TestCommandCommand(t *testing.T) {
	feed := writeFeed(t)

	out, err := run(t, "--feed", feed, "command", "1")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(out, "docker run --rm \\\n"))
	require.True(t, strings.HasSuffix(out, "/incoming/outgoing\n"))

	_, err = run(t, "--feed", feed, "--retries", "0", "command", "2")
	require.Error(t, err)
	require.True(t, nodedetails.MatchesErrorType(err, nodedetails.ErrorTypeNotFound))

	_, err = run(t, "--feed", feed, "command", "abc")
	require.Error(t, err)
	require.Contains(t, err.Error(), "invalid node id")
}

func TestListCommand(t *testing.T) {
	feed := writeFeed(t)

	out, err := run(t, "--feed", feed, "list")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	require.True(t, strings.HasPrefix(lines[0], "ID"))
	require.True(t, strings.HasPrefix(lines[1], "2 "))
	require.Contains(t, lines[2], "1 day, 1 hr, 2 min, 3 sec")
}

func TestJSONOutput(t *testing.T) {
	feed := writeFeed(t)

	out, err := run(t, "--feed", feed, "--json", "show", "1")
	require.NoError(t, err)

	var detail nodedetails.Detail
	require.NoError(t, json.Unmarshal([]byte(out), &detail))
	require.Equal(t, 1, detail.NodeID)
	require.Equal(t, "FinishedSuccessfully", detail.StatusLabel)
	require.False(t, detail.CanDeleteNode)
}

func TestHistoryCommand(t *testing.T) {
	feed := writeFeed(t)
	logDir := t.TempDir()

	_, err := run(t, "--feed", feed, "--log-dir", logDir, "show", "1")
	require.NoError(t, err)

	out, err := run(t, "--feed", feed, "--log-dir", logDir, "--json", "history", "1")
	require.NoError(t, err)
	var entries []*nodedetails.RenderLogEntry
	require.NoError(t, json.Unmarshal([]byte(out), &entries))
	require.Len(t, entries, 1)
	require.Equal(t, "1 day, 1 hr, 2 min, 3 sec", entries[0].Runtime)

	_, err = run(t, "--feed", feed, "history", "1")
	require.Error(t, err)
	require.Contains(t, err.Error(), "requires --log-dir")
}

func TestMissingFeed(t *testing.T) {
	_, err := run(t, "--feed", filepath.Join(t.TempDir(), "none.yaml"), "list")
	require.Error(t, err)
	require.True(t, nodedetails.MatchesErrorType(err, nodedetails.ErrorTypeNotFound))
}

package nodedetails

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const testFeed = `
name: brain-mri
nodes:
  - id: 1
    status: finishedSuccessfully
    start_date: "2024-01-01T00:00:00Z"
    end_date: "2024-01-01T00:00:45Z"
    plugin_name: pl-dircopy
    plugin_version: "2.1.1"
    parameters:
      - param_name: dir
        value: "/data"
  - id: 2
    status: started
    status_labels:
      - Computing
    start_date: "2024-01-02T00:00:00Z"
    plugin_name: pl-fshack
    plugin_version: "1.2.0"
plugins:
  - name: pl-dircopy
    version: "2.1.1"
    dock_image: fnndsc/pl-dircopy:2.1.1
    selfexec: dircopy
    parameters:
      - name: dir
        flag: --dir
  - name: pl-fshack
    version: "1.2.0"
    dock_image: fnndsc/pl-fshack
    selfexec: fshack
`

func TestLoadFeedString(t *testing.T) {
	source, err := LoadFeedString(testFeed)
	require.NoError(t, err)
	ctx := context.Background()

	nodes, err := source.ListNodes(ctx)
	require.NoError(t, err)
	require.Len(t, nodes, 2)
	require.Equal(t, 2, nodes[0].ID, "newest node first")
	require.Equal(t, []string{"Computing"}, nodes[0].StatusLabels)

	node, err := source.GetNode(ctx, 1)
	require.NoError(t, err)
	require.Equal(t, "45 sec", RuntimeString(node.StartDate, node.EndDate))

	plugin, err := source.GetPlugin(ctx, node)
	require.NoError(t, err)
	require.Equal(t, "fnndsc/pl-dircopy:2.1.1", plugin.DockImage)

	params, err := source.ListPluginParameters(ctx, plugin, DefaultListOptions())
	require.NoError(t, err)
	require.Equal(t, []*PluginParameter{{Name: "dir", Flag: "--dir"}}, params)

	bindings, err := source.ListParameters(ctx, node, DefaultListOptions())
	require.NoError(t, err)
	require.Equal(t, []*ParameterBinding{{ParamName: "dir", Value: "/data"}}, bindings)

	_, err = source.GetNode(ctx, 99)
	require.True(t, MatchesErrorType(err, ErrorTypeNotFound))
}

func TestLoadFeedFile(t *testing.T) {
	dir := t.TempDir()

	t.Run("yaml", func(t *testing.T) {
		path := filepath.Join(dir, "feed.yaml")
		require.NoError(t, os.WriteFile(path, []byte(testFeed), 0644))

		source, err := LoadFeedFile(path)
		require.NoError(t, err)
		nodes, err := source.ListNodes(context.Background())
		require.NoError(t, err)
		require.Len(t, nodes, 2)
	})

	t.Run("json", func(t *testing.T) {
		path := filepath.Join(dir, "feed.json")
		data := `{"nodes":[{"id":5,"status":"cancelled","start_date":"2024-01-01T00:00:00Z","plugin_name":"pl-a","plugin_version":"1","parameters":[{"param_name":"x","value":"y"}]}],"plugins":[{"name":"pl-a","version":"1","dock_image":"img","selfexec":"a"}]}`
		require.NoError(t, os.WriteFile(path, []byte(data), 0644))

		source, err := LoadFeedFile(path)
		require.NoError(t, err)
		node, err := source.GetNode(context.Background(), 5)
		require.NoError(t, err)
		require.Equal(t, NodeStatusCancelled, node.Status)
		bindings, err := source.ListParameters(context.Background(), node, DefaultListOptions())
		require.NoError(t, err)
		require.Len(t, bindings, 1)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadFeedFile(filepath.Join(dir, "nope.yaml"))
		require.Error(t, err)
		require.True(t, MatchesErrorType(err, ErrorTypeNotFound))
	})

	t.Run("malformed file", func(t *testing.T) {
		path := filepath.Join(dir, "bad.yaml")
		require.NoError(t, os.WriteFile(path, []byte("nodes: [unterminated"), 0644))
		_, err := LoadFeedFile(path)
		require.Error(t, err)
		require.True(t, MatchesErrorType(err, ErrorTypeInvalid))
		require.False(t, IsRecoverable(err))
	})
}

func TestFeedValidation(t *testing.T) {
	_, err := LoadFeedString(`
nodes:
  - id: 1
  - id: 1
`)
	require.Error(t, err)
	require.Contains(t, err.Error(), "duplicate node id 1")

	_, err = LoadFeedString(`
plugins:
  - dock_image: img
`)
	require.Error(t, err)
	require.Contains(t, err.Error(), "plugin name required")
}

func TestMemorySourcePaging(t *testing.T) {
	source := NewMemorySource()
	node := &Node{ID: 1}
	source.AddNode(node,
		&ParameterBinding{ParamName: "a"},
		&ParameterBinding{ParamName: "b"},
		&ParameterBinding{ParamName: "c"},
	)
	ctx := context.Background()

	got, err := source.ListParameters(ctx, node, ListOptions{Limit: 2, Offset: 1})
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.Equal(t, "b", got[0].ParamName)

	got, err = source.ListParameters(ctx, node, ListOptions{Limit: 2, Offset: 5})
	require.NoError(t, err)
	require.Empty(t, got)

	got, err = source.ListParameters(ctx, node, ListOptions{})
	require.NoError(t, err)
	require.Len(t, got, 3)
}

func TestSummarizeAll(t *testing.T) {
	source, err := LoadFeedString(testFeed)
	require.NoError(t, err)
	nodes, err := source.ListNodes(context.Background())
	require.NoError(t, err)

	summaries := SummarizeAll(append(nodes, nil))
	require.Len(t, summaries, 2)
	require.Equal(t, "pl-fshack v. 1.2.0", summaries[0].Title)
	require.Equal(t, "Computing", summaries[0].Status)
	require.Equal(t, "", summaries[0].Runtime)
	require.Equal(t, "FinishedSuccessfully", summaries[1].Status)
	require.Equal(t, "45 sec", summaries[1].Runtime)
}

func TestExampleFeed(t *testing.T) {
	source, err := LoadFeedFile(filepath.Join("examples", "feed.yaml"))
	require.NoError(t, err)
	ctx := context.Background()

	node, err := source.GetNode(ctx, 2)
	require.NoError(t, err)
	require.Equal(t, "Transmitting Data", NewDetail(node, nil).StatusLabel)

	node, err = source.GetNode(ctx, 1)
	require.NoError(t, err)
	require.Equal(t, "41 sec", RuntimeString(node.StartDate, node.EndDate))
}

package nodedetails

import (
	"context"
	"sort"
	"sync"
)

// MemorySource is an in-memory Source. It is safe for concurrent use.
type MemorySource struct {
	mutex      sync.RWMutex
	nodes      map[int]*Node
	plugins    map[pluginKey]*Plugin
	parameters map[pluginKey][]*PluginParameter
	bindings   map[int][]*ParameterBinding
}

type pluginKey struct {
	name    string
	version string
}

// NewMemorySource returns an empty MemorySource.
func NewMemorySource() *MemorySource {
	return &MemorySource{
		nodes:      map[int]*Node{},
		plugins:    map[pluginKey]*Plugin{},
		parameters: map[pluginKey][]*PluginParameter{},
		bindings:   map[int][]*ParameterBinding{},
	}
}

// AddNode stores a node along with its parameter bindings, replacing any node
// with the same ID.
func (s *MemorySource) AddNode(node *Node, bindings ...*ParameterBinding) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.nodes[node.ID] = node
	s.bindings[node.ID] = bindings
}

// AddPlugin stores a plugin and its declared parameters.
func (s *MemorySource) AddPlugin(plugin *Plugin, params ...*PluginParameter) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	key := pluginKey{name: plugin.Name, version: plugin.Version}
	s.plugins[key] = plugin
	s.parameters[key] = params
}

// GetNode returns the node with the given ID
func (s *MemorySource) GetNode(ctx context.Context, id int) (*Node, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	node, ok := s.nodes[id]
	if !ok {
		return nil, NotFoundf("node %d not found", id)
	}
	return node, nil
}

// ListNodes returns all nodes sorted by start date, newest first
func (s *MemorySource) ListNodes(ctx context.Context) ([]*Node, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mutex.RLock()
	nodes := make([]*Node, 0, len(s.nodes))
	for _, node := range s.nodes {
		nodes = append(nodes, node)
	}
	s.mutex.RUnlock()

	sort.Slice(nodes, func(i, j int) bool {
		ti, _ := ParseTimestamp(nodes[i].StartDate)
		tj, _ := ParseTimestamp(nodes[j].StartDate)
		if ti.Equal(tj) {
			return nodes[i].ID > nodes[j].ID
		}
		return ti.After(tj)
	})
	return nodes, nil
}

// GetPlugin returns the plugin the node executes
func (s *MemorySource) GetPlugin(ctx context.Context, node *Node) (*Plugin, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	plugin, ok := s.plugins[pluginKey{name: node.PluginName, version: node.PluginVersion}]
	if !ok {
		return nil, NotFoundf("plugin %s not found", PluginTitle(node))
	}
	return plugin, nil
}

// ListPluginParameters returns a page of the plugin's declared parameters
func (s *MemorySource) ListPluginParameters(ctx context.Context, plugin *Plugin, opts ListOptions) ([]*PluginParameter, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	return page(s.parameters[pluginKey{name: plugin.Name, version: plugin.Version}], opts), nil
}

// ListParameters returns a page of the node's parameter bindings
func (s *MemorySource) ListParameters(ctx context.Context, node *Node, opts ListOptions) ([]*ParameterBinding, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	return page(s.bindings[node.ID], opts), nil
}

package nodedetails

import "context"

// DefaultPageSize matches the page the platform is asked for when listing
// parameters.
const DefaultPageSize = 100

// ListOptions selects a page of a collection.
type ListOptions struct {
	Limit  int
	Offset int
}

// DefaultListOptions returns the first page of DefaultPageSize items.
func DefaultListOptions() ListOptions {
	return ListOptions{Limit: DefaultPageSize, Offset: 0}
}

// NodeSource provides the nodes of a feed.
type NodeSource interface {
	// GetNode returns the node with the given ID
	GetNode(ctx context.Context, id int) (*Node, error)

	// ListNodes returns all nodes, newest start date first
	ListNodes(ctx context.Context) ([]*Node, error)
}

// PluginSource provides plugin metadata for a node.
type PluginSource interface {
	// GetPlugin returns the plugin executed by the node
	GetPlugin(ctx context.Context, node *Node) (*Plugin, error)

	// ListPluginParameters returns a page of the plugin's declared parameters
	ListPluginParameters(ctx context.Context, plugin *Plugin, opts ListOptions) ([]*PluginParameter, error)
}

// ParameterSource provides the parameter values bound to a node.
type ParameterSource interface {
	// ListParameters returns a page of the node's parameter bindings
	ListParameters(ctx context.Context, node *Node, opts ListOptions) ([]*ParameterBinding, error)
}

// Source combines all collaborator contracts.
type Source interface {
	NodeSource
	PluginSource
	ParameterSource
}

func page[T any](items []T, opts ListOptions) []T {
	if opts.Offset < 0 {
		opts.Offset = 0
	}
	if opts.Offset >= len(items) {
		return []T{}
	}
	end := len(items)
	if opts.Limit > 0 && opts.Offset+opts.Limit < end {
		end = opts.Offset + opts.Limit
	}
	out := make([]T, end-opts.Offset)
	copy(out, items[opts.Offset:end])
	return out
}

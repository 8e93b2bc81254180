package nodedetails

import (
	"fmt"
	"strings"
	"time"
)

// CreatedLayout is the layout used to render a node's start date.
const CreatedLayout = "02 Jan 2006 @ 15:04"

// Resources holds the plugin data fetched for a node. A nil *Resources, or one
// without a plugin, means the data is not yet available.
type Resources struct {
	Plugin           *Plugin             `json:"plugin,omitempty"`
	PluginParameters []*PluginParameter  `json:"plugin_parameters,omitempty"`
	Bindings         []*ParameterBinding `json:"bindings,omitempty"`
}

// Available returns true if the command can be reconstructed.
func (r *Resources) Available() bool {
	return r != nil && r.Plugin != nil
}

// Detail is the resolved view of a single node. It is built once its inputs
// are available and never modified afterwards.
type Detail struct {
	NodeID        int           `json:"node_id"`
	Title         string        `json:"title"`
	CommandHeader string        `json:"command_header"`
	Status        DisplayStatus `json:"status"`
	StatusLabel   string        `json:"status_label"`
	StartTime     time.Time     `json:"start_time,omitzero"`
	Created       string        `json:"created,omitempty"`
	Runtime       string        `json:"runtime,omitempty"`
	Command       string        `json:"command"`
	CanAddNode    bool          `json:"can_add_node"`
	CanDeleteNode bool          `json:"can_delete_node"`
}

// NewDetail resolves the detail of node. res may be nil, in which case the
// command is empty.
func NewDetail(node *Node, res *Resources) *Detail {
	if node == nil {
		return nil
	}
	title := PluginTitle(node)
	status := ResolveDisplayStatus(node.Status, node.StatusLabels)
	detail := &Detail{
		NodeID:        node.ID,
		Title:         title,
		CommandHeader: fmt.Sprintf("Docker Command for %s", title),
		Status:        status,
		StatusLabel:   status.Label(),
		Runtime:       RuntimeString(node.StartDate, node.EndDate),
		CanAddNode:    canAddNode(node.Status),
		CanDeleteNode: !strings.Contains(node.PluginName, "dircopy"),
	}
	if start, ok := ParseTimestamp(node.StartDate); ok {
		detail.StartTime = start
		detail.Created = start.Format(CreatedLayout)
	}
	if res.Available() {
		detail.Command = Command(res.Plugin, res.PluginParameters, res.Bindings)
	}
	return detail
}

// PluginTitle returns the "<name> v. <version>" heading of a node.
func PluginTitle(node *Node) string {
	return fmt.Sprintf("%s v. %s", node.PluginName, node.PluginVersion)
}

// HasRuntime returns true if there is an elapsed runtime to show.
func (d *Detail) HasRuntime() bool {
	return d.Runtime != ""
}

func canAddNode(status NodeStatus) bool {
	switch status {
	case NodeStatusFinishedWithError, NodeStatusCancelled:
		return false
	default:
		return true
	}
}

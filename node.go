package nodedetails

import (
	"strings"
	"time"
)

// NodeStatus is the coarse lifecycle status reported for a plugin instance.
type NodeStatus string

const (
	NodeStatusWaitingForPrevious   NodeStatus = "waitingForPrevious"
	NodeStatusScheduled            NodeStatus = "scheduled"
	NodeStatusStarted              NodeStatus = "started"
	NodeStatusRegisteringFiles     NodeStatus = "registeringFiles"
	NodeStatusFinishedWithError    NodeStatus = "finishedWithError"
	NodeStatusCancelled            NodeStatus = "cancelled"
	NodeStatusFinishedSuccessfully NodeStatus = "finishedSuccessfully"
)

// Node is a single plugin instance within a feed. StatusLabels holds the
// fine-grained labels reported while the node is running, oldest first.
type Node struct {
	ID            int        `json:"id" yaml:"id"`
	Status        NodeStatus `json:"status" yaml:"status"`
	StatusLabels  []string   `json:"status_labels,omitempty" yaml:"status_labels,omitempty"`
	StartDate     string     `json:"start_date" yaml:"start_date"`
	EndDate       string     `json:"end_date,omitempty" yaml:"end_date,omitempty"`
	PluginName    string     `json:"plugin_name" yaml:"plugin_name"`
	PluginVersion string     `json:"plugin_version" yaml:"plugin_version"`
}

// Plugin is the containerized program a node executes.
type Plugin struct {
	Name      string `json:"name" yaml:"name"`
	Version   string `json:"version" yaml:"version"`
	DockImage string `json:"dock_image" yaml:"dock_image"`
	SelfExec  string `json:"selfexec" yaml:"selfexec"`
}

// PluginParameter is one declared parameter of a plugin.
type PluginParameter struct {
	Name string `json:"name" yaml:"name"`
	Flag string `json:"flag" yaml:"flag"`
}

// ParameterBinding is the concrete value bound to a plugin parameter for a
// specific node.
type ParameterBinding struct {
	ParamName string `json:"param_name" yaml:"param_name"`
	Value     string `json:"value" yaml:"value"`
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999",
}

// ParseTimestamp parses an ISO formatted date-time. Timestamps without a zone
// offset are read as UTC. The boolean is false for empty or malformed input.
func ParseTimestamp(value string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, false
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

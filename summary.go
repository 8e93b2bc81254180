package nodedetails

import "time"

// NodeSummary provides a summary view of a node
type NodeSummary struct {
	NodeID    int       `json:"node_id"`
	Title     string    `json:"title"`
	Status    string    `json:"status"`
	StartTime time.Time `json:"start_time,omitzero"`
	Runtime   string    `json:"runtime,omitempty"`
}

// Summarize returns the summary row of a node.
func Summarize(node *Node) *NodeSummary {
	summary := &NodeSummary{
		NodeID:  node.ID,
		Title:   PluginTitle(node),
		Status:  ResolveDisplayStatus(node.Status, node.StatusLabels).Label(),
		Runtime: RuntimeString(node.StartDate, node.EndDate),
	}
	if start, ok := ParseTimestamp(node.StartDate); ok {
		summary.StartTime = start
	}
	return summary
}

// SummarizeAll summarizes nodes, keeping their order.
func SummarizeAll(nodes []*Node) []*NodeSummary {
	summaries := make([]*NodeSummary, 0, len(nodes))
	for _, node := range nodes {
		if node == nil {
			continue
		}
		summaries = append(summaries, Summarize(node))
	}
	return summaries
}

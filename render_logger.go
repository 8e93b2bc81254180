package nodedetails

import (
	"context"
	"time"

	"go.jetify.com/typeid"
)

// RenderLogEntry records a node detail as it was resolved for display
type RenderLogEntry struct {
	ID         string    `json:"id"`
	NodeID     int       `json:"node_id"`
	Title      string    `json:"title"`
	Status     string    `json:"status"`
	Runtime    string    `json:"runtime,omitempty"`
	Command    string    `json:"command,omitempty"`
	RenderedAt time.Time `json:"rendered_at"`
}

// NewRenderLogEntry returns an entry for detail stamped with the given time.
func NewRenderLogEntry(detail *Detail, renderedAt time.Time) *RenderLogEntry {
	return &RenderLogEntry{
		ID:         NewRenderID(),
		NodeID:     detail.NodeID,
		Title:      detail.Title,
		Status:     detail.StatusLabel,
		Runtime:    detail.Runtime,
		Command:    detail.Command,
		RenderedAt: renderedAt,
	}
}

// NewRenderID returns a new typeid for a render log entry
func NewRenderID() string {
	id, err := typeid.WithPrefix("render")
	if err != nil {
		panic(err)
	}
	return id.String()
}

// RenderLogger records resolved node details
type RenderLogger interface {
	// LogRender records a resolved detail
	LogRender(ctx context.Context, entry *RenderLogEntry) error

	// GetRenderHistory retrieves the render log for a node
	GetRenderHistory(ctx context.Context, nodeID int) ([]*RenderLogEntry, error)
}

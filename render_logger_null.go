package nodedetails

import "context"

// NullRenderLogger is a no-op implementation of RenderLogger.
type NullRenderLogger struct{}

func NewNullRenderLogger() *NullRenderLogger {
	return &NullRenderLogger{}
}

func (l *NullRenderLogger) LogRender(ctx context.Context, entry *RenderLogEntry) error {
	return nil
}

func (l *NullRenderLogger) GetRenderHistory(ctx context.Context, nodeID int) ([]*RenderLogEntry, error) {
	return nil, nil
}

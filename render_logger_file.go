package nodedetails

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// FileRenderLogger is an implementation of RenderLogger that appends to one
// newline-delimited JSON file per node.
type FileRenderLogger struct {
	directory string
	mutex     sync.Mutex
}

func NewFileRenderLogger(directory string) *FileRenderLogger {
	return &FileRenderLogger{directory: directory}
}

func (l *FileRenderLogger) nodeLogPath(nodeID int) string {
	return filepath.Join(l.directory, fmt.Sprintf("node-%d.jsonl", nodeID))
}

func (l *FileRenderLogger) GetRenderHistory(ctx context.Context, nodeID int) ([]*RenderLogEntry, error) {
	data, err := os.ReadFile(l.nodeLogPath(nodeID))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	var entries []*RenderLogEntry
	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(bytes.TrimSpace(line)) == 0 {
			continue
		}
		var entry RenderLogEntry
		if err := json.Unmarshal(line, &entry); err != nil {
			return nil, err
		}
		entries = append(entries, &entry)
	}
	return entries, scanner.Err()
}

func (l *FileRenderLogger) LogRender(ctx context.Context, entry *RenderLogEntry) error {
	data, err := json.Marshal(entry)
	if err != nil {
		return err
	}
	l.mutex.Lock()
	defer l.mutex.Unlock()

	if err := os.MkdirAll(l.directory, 0755); err != nil {
		return err
	}
	f, err := os.OpenFile(l.nodeLogPath(entry.NodeID), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return err
	}
	defer f.Close()

	if _, err := f.Write(append(data, '\n')); err != nil {
		return err
	}
	return f.Sync()
}

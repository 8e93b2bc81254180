package nodedetails

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// FeedNode is a node entry of a feed document, with its parameter bindings.
type FeedNode struct {
	Node       `yaml:",inline"`
	Parameters []*ParameterBinding `json:"parameters,omitempty" yaml:"parameters,omitempty"`
}

// FeedPlugin is a plugin entry of a feed document, with its declared
// parameters.
type FeedPlugin struct {
	Plugin     `yaml:",inline"`
	Parameters []*PluginParameter `json:"parameters,omitempty" yaml:"parameters,omitempty"`
}

// Feed is a snapshot of feed data as supplied by the platform.
type Feed struct {
	Name    string        `json:"name,omitempty" yaml:"name,omitempty"`
	Nodes   []*FeedNode   `json:"nodes" yaml:"nodes"`
	Plugins []*FeedPlugin `json:"plugins" yaml:"plugins"`
}

// Source returns a MemorySource holding the feed's data.
func (f *Feed) Source() (*MemorySource, error) {
	source := NewMemorySource()
	seen := make(map[int]bool, len(f.Nodes))
	for _, entry := range f.Nodes {
		if entry == nil {
			continue
		}
		if seen[entry.ID] {
			return nil, NewDetailError(ErrorTypeInvalid, fmt.Sprintf("duplicate node id %d", entry.ID))
		}
		seen[entry.ID] = true
		node := entry.Node
		source.AddNode(&node, entry.Parameters...)
	}
	for _, entry := range f.Plugins {
		if entry == nil {
			continue
		}
		if entry.Name == "" {
			return nil, NewDetailError(ErrorTypeInvalid, "plugin name required")
		}
		plugin := entry.Plugin
		source.AddPlugin(&plugin, entry.Parameters...)
	}
	return source, nil
}

// LoadFeedFile loads a feed document from a YAML file, or a JSON file if the
// file has a .json extension.
func LoadFeedFile(path string) (*MemorySource, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, WrapError(ErrorTypeNotFound, err)
		}
		return nil, fmt.Errorf("failed to read feed file: %w", err)
	}
	var feed Feed
	if strings.EqualFold(filepath.Ext(path), ".json") {
		err = json.Unmarshal(data, &feed)
	} else {
		err = yaml.Unmarshal(data, &feed)
	}
	if err != nil {
		return nil, WrapError(ErrorTypeInvalid, fmt.Errorf("failed to unmarshal feed file: %w", err))
	}
	return feed.Source()
}

// LoadFeedString loads a feed document from a YAML string
func LoadFeedString(data string) (*MemorySource, error) {
	var feed Feed
	if err := yaml.Unmarshal([]byte(data), &feed); err != nil {
		return nil, WrapError(ErrorTypeInvalid, fmt.Errorf("failed to unmarshal feed: %w", err))
	}
	return feed.Source()
}

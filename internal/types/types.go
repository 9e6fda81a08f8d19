// Package types defines every cross‑package data structure used by the tree CLI.
package types

import "encoding/xml"

const (
	NodeTypeFile      = "file"
	NodeTypeDirectory = "directory"

	FormatRaw  = "raw"
	FormatJSON = "json"
	FormatXML  = "xml"
	FormatYAML = "yaml"

	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// TraversalConfig is captured once before a walk starts and is never mutated afterwards.
// A MaxDepth of zero means the depth is unlimited.
type TraversalConfig struct {
	ShowHidden      bool
	DirectoriesOnly bool
	MaxDepth        int
	FullPath        bool
	UseGitignore    bool
	NoIndent        bool
}

// DepthLimited reports whether a maximum depth was requested.
func (config TraversalConfig) DepthLimited() bool {
	return config.MaxDepth > 0
}

// ValidatedPath is an input root that already passed existence checks.
type ValidatedPath struct {
	InputPath    string
	AbsolutePath string
}

// TreeNode is one entry produced by the walker. The traversal root is depth 0
// and is not emitted; its direct children are depth 1.
type TreeNode struct {
	Path        string
	Name        string
	Depth       int
	IsDirectory bool
	IsLast      bool
	ReadError   error
}

// HasReadError reports whether the entry could not be listed or stat'ed.
func (node TreeNode) HasReadError() bool {
	return node.ReadError != nil
}

// Stats accumulates directory and file counts for a single walk.
type Stats struct {
	Directories int `json:"directories" xml:"directories,attr" yaml:"directories"`
	Files       int `json:"files" xml:"files,attr" yaml:"files"`
}

// Record counts a node that was emitted without a read error.
func (stats *Stats) Record(node TreeNode) {
	if node.HasReadError() {
		return
	}
	if node.IsDirectory {
		stats.Directories++
		return
	}
	stats.Files++
}

// TreeOutputNode is the nested form of a walk used by the structured formats.
type TreeOutputNode struct {
	XMLName  xml.Name          `json:"-" xml:"node" yaml:"-"`
	Name     string            `json:"name" xml:"name,attr" yaml:"name"`
	Path     string            `json:"path" xml:"path,attr" yaml:"path"`
	Type     string            `json:"type" xml:"type,attr" yaml:"type"`
	Error    string            `json:"error,omitempty" xml:"error,attr,omitempty" yaml:"error,omitempty"`
	Children []*TreeOutputNode `json:"children,omitempty" xml:"node,omitempty" yaml:"children,omitempty"`
}

// TreeOutput is a rendered root together with its final counts.
type TreeOutput struct {
	XMLName xml.Name        `json:"-" xml:"tree" yaml:"-"`
	Root    *TreeOutputNode `json:"root" xml:"node" yaml:"root"`
	Summary Stats           `json:"summary" xml:"summary" yaml:"summary"`
}

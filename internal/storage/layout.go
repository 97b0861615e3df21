// Package storage creates the directory layout the pipeline services read
// from and write to.
package storage

import (
	"path"
	"strings"
)

// Subdirectories created under the storage root, in creation order.
const (
	RawDir            = "raw"
	ScienceDir        = "science"
	CheckpointsRawDir = "checkpoints_raw"
	CheckpointsSciDir = "checkpoints_sci"
	CheckpointsDisDir = "checkpoints_dis"
)

// Layout is the fixed set of directories under a storage root.
type Layout struct {
	Root string
}

// NewLayout returns the layout for root. Trailing slashes are dropped so
// "hdfs:///fink/" and "hdfs:///fink" produce the same paths.
func NewLayout(root string) Layout {
	trimmed := strings.TrimRight(root, "/")
	if trimmed == "" {
		trimmed = root
	}
	return Layout{Root: trimmed}
}

// Paths returns the root followed by its five subdirectories.
func (l Layout) Paths() []string {
	return []string{
		l.Root,
		l.join(RawDir),
		l.join(ScienceDir),
		l.join(CheckpointsRawDir),
		l.join(CheckpointsSciDir),
		l.join(CheckpointsDisDir),
	}
}

// join uses slash separators on purpose: roots may be URIs (hdfs://...).
func (l Layout) join(name string) string {
	if strings.Contains(l.Root, "://") {
		return l.Root + "/" + name
	}
	return path.Join(l.Root, name)
}

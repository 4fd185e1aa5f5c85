// Package scanner finds the largest regular files under a directory tree.
// It walks the tree with fastwalk, buffers every (size, path) pair it can
// measure, and selects the top entries by size after a full sort.
package scanner

import "github.com/jamesainslie/infodump/pkg/infodump/config"

// Options configures the scanner behavior.
type Options struct {
	// Root is the starting directory for the scan.
	Root string

	// Limit is the number of largest files to return. Zero returns an
	// empty result without error; negative values are treated as zero.
	Limit int

	// Exclude contains glob patterns for paths to skip during scanning.
	// Patterns are matched against the basename and the full path.
	Exclude []string
}

// Validate normalizes the options in place.
func (o *Options) Validate() error {
	if o.Root == "" {
		o.Root = config.DefaultPath()
	}
	if o.Limit < 0 {
		o.Limit = 0
	}
	return nil
}

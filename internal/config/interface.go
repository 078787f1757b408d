package config

import "context"

// Loader is the interface for a format-specific graph description loader.
type Loader interface {
	// Load reads the graph description at path and translates it into the
	// format-agnostic model. Any failure is reported as a *ParseError.
	Load(ctx context.Context, path string) (*Graph, error)
}

package dot_adapter

import (
	"context"
	"os"

	"github.com/vk/markovavail/internal/config"
	"github.com/vk/markovavail/internal/ctxlog"
	"gonum.org/v1/gonum/graph/formats/dot"
)

// Loader is the DOT-specific implementation of the config.Loader interface.
type Loader struct{}

// NewLoader creates a new DOT model loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load reads a single DOT file and translates its first graph into the
// format-agnostic model.
func (l *Loader) Load(ctx context.Context, path string) (*config.Graph, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("DOT loader started.", "path", path)

	src, err := os.ReadFile(path)
	if err != nil {
		return nil, &config.ParseError{Path: path, Reason: "cannot read model file", Err: err}
	}
	return l.LoadBytes(ctx, path, src)
}

// LoadBytes translates DOT source that has already been read. The name is
// used only for error messages.
func (l *Loader) LoadBytes(ctx context.Context, name string, src []byte) (*config.Graph, error) {
	logger := ctxlog.FromContext(ctx)

	file, err := dot.ParseBytes(src)
	if err != nil {
		return nil, &config.ParseError{Path: name, Reason: "invalid DOT syntax", Err: err}
	}
	if len(file.Graphs) == 0 {
		return nil, &config.ParseError{Path: name, Reason: "file contains no graph"}
	}
	if len(file.Graphs) > 1 {
		logger.Warn("File contains more than one graph, only the first is used.", "path", name, "graphs", len(file.Graphs))
	}

	g := file.Graphs[0]
	if !g.Directed {
		return nil, &config.ParseError{Path: name, Reason: "model must be a digraph, not an undirected graph"}
	}

	t := &translator{path: name}
	out := &config.Graph{Name: Unquote(g.ID)}
	if err := t.stmts(g.Stmts, out); err != nil {
		return nil, err
	}

	logger.Debug("DOT loading complete.", "graph", out.Name, "nodes", len(out.Nodes), "edges", len(out.Edges))
	return out, nil
}

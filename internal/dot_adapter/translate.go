package dot_adapter

import (
	"fmt"

	"github.com/vk/markovavail/internal/config"
	"gonum.org/v1/gonum/graph/formats/dot/ast"
)

// translator walks the DOT syntax tree in source order.
type translator struct {
	path string
}

func (t *translator) stmts(stmts []ast.Stmt, out *config.Graph) error {
	for _, stmt := range stmts {
		switch s := stmt.(type) {
		case *ast.NodeStmt:
			t.node(s, out)
		case *ast.EdgeStmt:
			if err := t.edge(s, out); err != nil {
				return err
			}
		case *ast.Subgraph:
			if err := t.stmts(s.Stmts, out); err != nil {
				return err
			}
		case *ast.AttrStmt, *ast.Attr:
			// Defaults and graph attributes carry no model information.
		default:
			return &config.ParseError{Path: t.path, Reason: fmt.Sprintf("unsupported statement %q", stmt.String())}
		}
	}
	return nil
}

func (t *translator) node(s *ast.NodeStmt, out *config.Graph) {
	name := Unquote(s.Node.ID)
	if name == defaultNodeName {
		return
	}
	out.Nodes = append(out.Nodes, &config.Node{
		Name:  name,
		Attrs: config.NewAttributes(attrMap(s.Attrs)),
	})
}

// edge expands `a -> b -> c [attrs]` into a->b and b->c, both carrying attrs.
func (t *translator) edge(s *ast.EdgeStmt, out *config.Graph) error {
	attrs := attrMap(s.Attrs)
	from, err := t.endpoint(s.From, out)
	if err != nil {
		return err
	}
	for to := s.To; to != nil; to = to.To {
		if !to.Directed {
			return &config.ParseError{Path: t.path, Reason: fmt.Sprintf("undirected edge in %q, use ->", s.String())}
		}
		dest, err := t.endpoint(to.Vertex, out)
		if err != nil {
			return err
		}
		for _, src := range from {
			for _, dst := range dest {
				out.Edges = append(out.Edges, &config.Edge{
					Source: src,
					Dest:   dst,
					Attrs:  config.NewAttributes(attrs),
				})
			}
		}
		from = dest
	}
	return nil
}

// endpoint translates the contents of a subgraph endpoint (its nodes and
// inner edges are part of the model) and returns the names it stands for.
func (t *translator) endpoint(v ast.Vertex, out *config.Graph) ([]string, error) {
	if sub, ok := v.(*ast.Subgraph); ok {
		if err := t.stmts(sub.Stmts, out); err != nil {
			return nil, err
		}
	}
	return t.vertexNames(v), nil
}

// vertexNames returns the state names an edge endpoint stands for. A
// subgraph endpoint stands for every node declared inside it.
func (t *translator) vertexNames(v ast.Vertex) []string {
	switch v := v.(type) {
	case *ast.Node:
		return []string{Unquote(v.ID)}
	case *ast.Subgraph:
		var names []string
		for _, stmt := range v.Stmts {
			switch s := stmt.(type) {
			case *ast.NodeStmt:
				names = append(names, Unquote(s.Node.ID))
			case *ast.EdgeStmt:
				names = append(names, t.vertexNames(s.From)...)
				for to := s.To; to != nil; to = to.To {
					names = append(names, t.vertexNames(to.Vertex)...)
				}
			case *ast.Subgraph:
				names = append(names, t.vertexNames(s)...)
			}
		}
		return dedupe(names)
	}
	return nil
}

func dedupe(names []string) []string {
	seen := make(map[string]struct{}, len(names))
	out := names[:0]
	for _, n := range names {
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	return out
}

package dot_adapter

import "gonum.org/v1/gonum/graph/formats/dot/ast"

// defaultNodeName is the name some DOT front ends give to the `node [...]`
// default declaration. It is never a state.
const defaultNodeName = "node"

// Unquote removes one pair of surrounding double quotes, if present. All
// other strings pass through unchanged.
func Unquote(s string) string {
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		return s[1 : len(s)-1]
	}
	return s
}

// attrMap converts a DOT attribute list into a dequoted key/value map. A
// later duplicate key overwrites an earlier one, as in Graphviz.
func attrMap(attrs []*ast.Attr) map[string]string {
	m := make(map[string]string, len(attrs))
	for _, a := range attrs {
		m[Unquote(a.Key)] = Unquote(a.Val)
	}
	return m
}

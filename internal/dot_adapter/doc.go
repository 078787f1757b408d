// Package dot_adapter loads Markov availability models written in the
// Graphviz DOT language and translates them into the format-agnostic
// config.Graph.
//
// Parsing is delegated to gonum's DOT parser, which keeps identifiers
// exactly as written. This package is responsible for everything the
// parser leaves to its callers:
//
//   - stripping the surrounding double quotes from IDs and attribute values,
//   - ignoring default declarations (`node [...]`, `edge [...]`, `graph [...]`),
//   - flattening subgraphs and expanding edge chains (`a -> b -> c`),
//   - rejecting undirected graphs and edges, which have no meaning in a CTMC.
package dot_adapter

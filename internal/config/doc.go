// Package config defines the format-agnostic model of a Markov availability
// graph description, along with the Loader interface used to read one from
// disk and the ParseError returned when that fails.
//
// The `config.Graph` is the single source of truth for the `builder`
// package. Concrete loaders, such as the DOT one, live in separate packages.
package config

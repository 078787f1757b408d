// Package model holds the canonical, solved-for representation of a Markov
// availability model: the discovered states, their annotations, and the
// dense FIT transition-rate matrix, plus the Solution derived from it.
//
// A Model is built once by the builder package and is read-only afterwards.
// A Solution holds no reference back to its Model; reporting code is handed
// both.
package model

// Package app contains the core application logic: the solve pipeline from
// model file to reports, and the rate sheet generator. It is decoupled
// from any specific entrypoint like a CLI.
package app

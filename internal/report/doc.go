// Package report renders a solved model: per-state occupancy, per
// availability class totals and the tributary transitions into each state,
// as aligned text or as a YAML document.
package report

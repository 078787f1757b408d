// Package ratesheet evaluates an HCL rate parameter file into a rate
// dictionary. A sheet declares named parameters (component counts, FIT
// figures, service times) and derives each transition rate from them, so
// alternative configurations can be generated by overriding parameters.
package ratesheet

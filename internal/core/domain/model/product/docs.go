// Package product contains the Product aggregate: a single shipment line item
// with optional weight and volume measurements and an optional assignment to a
// scheduled departure.
//
// A product whose measurements are still unknown contributes zero to capacity
// calculations; a product without a departure assignment consumes no capacity
// at all. All assignment changes that affect a departure's load go through the
// assignment commands, never through direct field mutation.
package product

// Package services contains stateless domain services that implement business
// logic spanning aggregates.
//
// AdmissionEvaluator is the capacity admission-control decision function: it
// decides whether adding a weight/volume delta to a departure's current load
// keeps the departure within its declared quota. The evaluator is pure; the
// assignment commands are responsible for reading the current load and for
// serializing the check-then-commit window per departure.
package services

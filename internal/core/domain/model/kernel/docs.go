// Package kernel contains shared value objects used across domain aggregates.
//
// The package provides the UUID identity type used by every aggregate root.
// Value objects here are immutable: they are created through constructor
// functions, validate their own state, and the zero value is always invalid.
package kernel

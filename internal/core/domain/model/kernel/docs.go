// Package kernel contains shared value objects used across all domain
// aggregates: identifiers and geographic coordinates. Everything in this
// package is immutable and safe for concurrent use.
package kernel

// Package httpserver exposes the relay's HTTP surface: a health
// endpoint reporting stream-store reachability and gateway readiness.
package httpserver

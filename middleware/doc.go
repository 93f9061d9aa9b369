// Package middleware integrates authex with net/http: it extracts bearer
// tokens, runs verification, stashes the established identity in the
// request context, and gates handlers on permit lists.
//
// Verification outcomes are instrumented through OpenTelemetry when a
// meter or tracer is supplied; by default instrumentation is a no-op.
package middleware

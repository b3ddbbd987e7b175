// Package orchestrator wires action lookup, form state, URL building and
// rendering into a single entry point for callers that want rendered output
// for one action.
package orchestrator

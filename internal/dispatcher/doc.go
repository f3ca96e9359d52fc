// Package dispatcher attempts translation against an ordered candidate list,
// one candidate at a time, stopping at the first success. Per-candidate
// failures are swallowed and logged; only exhaustion of the list surfaces to
// the caller, carrying the ordered failure trail for diagnostics.
package dispatcher

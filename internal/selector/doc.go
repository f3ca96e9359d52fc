// Package selector decides which backend URLs a translation request should
// be dispatched to, and in what order. It implements the tiered routing
// policy: explicit override wins outright, short texts prefer the local
// backend with the remote as fallback, long texts go remote only.
package selector

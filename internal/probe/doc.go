// Package probe implements one-shot reachability checks for translation
// backends, used by the CLI to report which candidates are currently up.
package probe

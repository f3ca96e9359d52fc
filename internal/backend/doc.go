// Package backend implements the HTTP client for a single translation
// backend. It speaks the LibreTranslate wire contract and classifies every
// failed attempt as unreachable, timeout, bad-status, or malformed-body so
// the dispatcher can report what went wrong per candidate.
package backend

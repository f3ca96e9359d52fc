// Package detect provides local language detection for the auto-source path,
// mapping detector output onto the supported English/Spanish pair.
package detect

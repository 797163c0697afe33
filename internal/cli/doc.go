// Package cli parses the wamvgen command line, validates it and maps
// failures onto process exit codes.
package cli

// Package magetasks holds the build, lint, and test tasks invoked from the
// Magefile. Tasks print their own section headers and pass tool output
// through unmodified.
package magetasks

// Package scanner turns an upload source into transfer items.
//
// A regular file becomes one item keyed by the prefix verbatim. A directory
// is walked recursively and every regular file below it becomes one item
// keyed by the prefix joined with its forward-slash relative path.
package scanner

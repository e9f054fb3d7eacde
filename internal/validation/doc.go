// Package validation provides request validation for the upload coordinator.
//
// Requests are validated synchronously at submission so that a malformed
// request never starts a background upload or opens a transport.
package validation

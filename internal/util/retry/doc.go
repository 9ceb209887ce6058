// Package retry provides exponential backoff for operations that fail
// transiently, such as waiting for a cloud server to reach a desired
// state. Errors wrapped with [Fatal] abort the retry loop immediately.
package retry

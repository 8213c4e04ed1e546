// Package services provides the shared error taxonomy and context plumbing
// used by pipeline stages and the API surface. Errors are tagged with sentinel
// markers so callers can classify failures without string matching.
package services

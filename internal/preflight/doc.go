// Package preflight provides readiness checks for the filesystem paths and
// external binaries the pipeline depends on.
//
// These checks run in two contexts:
//   - The daemon runs RunAll at startup; a failed check aborts before any
//     stage request can strand a half-written artifact.
//   - The CLI "clipforge doctor" command uses the individual check functions
//     to display environment health.
package preflight

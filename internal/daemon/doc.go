// Package daemon coordinates the long-running clipforge process.
//
// It wires configuration, the video store, and the pipeline into a single
// lifecycle with flock-based locking to prevent multiple instances, runs the
// preflight checks at startup, and serves the HTTP API that drives stage
// transitions. Stage logic lives in the pipeline package; the daemon focuses
// on startup, shutdown, and the request surface.
package daemon

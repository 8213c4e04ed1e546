// Package logs reads the daemon log file for the CLI and the HTTP API. It
// tails the last N lines and can follow appends, tolerating rotation and a
// log file that does not exist yet.
package logs

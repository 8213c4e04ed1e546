// Command clipforge drives the video processing pipeline: one-shot stage
// transitions from the shell, or a long-running daemon exposing the HTTP API.
package main

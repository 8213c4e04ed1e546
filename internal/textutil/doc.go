// Package textutil sanitizes user-supplied names before they reach the
// filesystem or an ffmpeg command line.
package textutil

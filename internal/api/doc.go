// Package api defines the transport-level payload types exchanged over the
// HTTP surface and the conversions from internal records into them.
package api

// Package server implements the Unix domain socket server for batch circle
// detection.
//
// # Lifecycle
//
// The server binds a Unix socket (removing any stale socket file first),
// accepts connections until its context is cancelled, and removes the
// socket file on the way out. Each connection is served on its own
// goroutine and may issue any number of detect exchanges.
//
// # Error containment
//
// Failures are contained at three levels:
//
//   - per ROI: detection errors and panics become an error entry in the
//     result list; the rest of the batch is unaffected
//   - per request: a malformed header or mismatched ROI frame yields an
//     ok=false response; the connection stays open
//   - per connection: framing errors, timeouts and disconnects drop the
//     connection; the server keeps running
//
// ROIs within a request are processed in parallel on a bounded worker pool.
package server

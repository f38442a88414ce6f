// Package protocol defines the wire format spoken between the detection
// server and its clients.
//
// # Framing
//
// Every message on the stream is a frame: an 8-byte big-endian unsigned
// length followed by exactly that many payload bytes. Two payload kinds
// exist:
//
//   - JSON frames carrying a request or response envelope
//   - raw frames carrying row-major uint8 grayscale pixel data
//
// # Detect exchange
//
// A detect exchange on an established connection is:
//
//  1. Client sends a JSON frame with a DetectRequest header describing the
//     detection parameters and one spec per region of interest (ROI).
//  2. Client sends one raw frame per ROI spec, in header order.
//  3. Server replies with a single JSON frame containing a DetectResponse.
//
// Connections are reusable: a client may issue any number of detect
// exchanges before closing.
//
// # Result ordering
//
// DetectResponse.Results is always ordered to match the request's ROISpecs,
// so clients can correlate by position as well as by ID.
package protocol

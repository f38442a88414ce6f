package protocol

import (
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// lenSize is the width of the frame length prefix in bytes.
const lenSize = 8

// MaxFrameBytes caps the payload size of a single frame. A peer announcing a
// larger frame is treated as corrupt rather than allocated for.
const MaxFrameBytes = 1 << 30

// ErrFrameTooLarge is returned when a frame length prefix exceeds MaxFrameBytes.
var ErrFrameTooLarge = errors.New("frame exceeds maximum size")

// WriteFrame writes a length-prefixed frame to w.
func WriteFrame(w io.Writer, payload []byte) error {
	var prefix [lenSize]byte
	binary.BigEndian.PutUint64(prefix[:], uint64(len(payload)))
	if _, err := w.Write(prefix[:]); err != nil {
		return fmt.Errorf("write frame length: %w", err)
	}
	if _, err := w.Write(payload); err != nil {
		return fmt.Errorf("write frame payload: %w", err)
	}
	return nil
}

// ReadFrame reads a single length-prefixed frame from r.
//
// The payload is read in full; a stream that closes mid-frame yields an
// error wrapping io.ErrUnexpectedEOF.
func ReadFrame(r io.Reader) ([]byte, error) {
	var prefix [lenSize]byte
	if _, err := io.ReadFull(r, prefix[:]); err != nil {
		return nil, fmt.Errorf("read frame length: %w", err)
	}
	n := binary.BigEndian.Uint64(prefix[:])
	if n > MaxFrameBytes {
		return nil, fmt.Errorf("%w: %d bytes", ErrFrameTooLarge, n)
	}
	payload := make([]byte, n)
	if _, err := io.ReadFull(r, payload); err != nil {
		return nil, fmt.Errorf("read frame payload: %w", err)
	}
	return payload, nil
}

// WriteJSON marshals v compactly and writes it as a single frame.
func WriteJSON(w io.Writer, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode message: %w", err)
	}
	return WriteFrame(w, data)
}

// ReadJSON reads one frame from r and unmarshals it into v.
func ReadJSON(r io.Reader, v any) error {
	payload, err := ReadFrame(r)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(payload, v); err != nil {
		return fmt.Errorf("decode message: %w", err)
	}
	return nil
}

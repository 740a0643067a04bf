// Package protocol encodes the self-test result record printed at the end of
// a run. The record reuses the Klipper message block layout (length,
// sequence, payload, CRC16, sync byte) so a host can tell a complete,
// uncorrupted record apart from line noise on the console UART.
package protocol

import "errors"

// Frame layout constants
const (
	FrameMax        = 64 // Largest frame accepted, header and trailer included
	FrameHeaderSize = 2  // length, sequence
	FrameTrailerCRC = 3  // offset of the CRC from the end of the frame
	FrameTrailerLen = 3  // CRC (2) + sync (1)
	FrameMin        = FrameHeaderSize + FrameTrailerLen

	FrameDest = 0x10 // sequence byte of every record frame
	FrameSync = 0x7E
)

var (
	ErrInvalidVLQ     = errors.New("invalid VLQ encoding")
	ErrBufferTooSmall = errors.New("buffer too small for VLQ")
	ErrBadFrame       = errors.New("malformed frame")
	ErrBadCRC         = errors.New("frame CRC mismatch")
	ErrNoRecord       = errors.New("line is not a result record")
)

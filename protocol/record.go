package protocol

import (
	"encoding/hex"
	"fmt"
	"strings"
)

// RecordPrefix starts the console line carrying a hex encoded record frame.
const RecordPrefix = "#R "

// Record is the outcome of one self-test run.
type Record struct {
	UARTPassed   bool
	UARTAttempts uint8 // attempts used; the attempt limit when the check failed
	UARTLast     uint8 // last byte read from the UART receive register
	SPIPassed    bool
	SPIValue     uint8 // byte read from the SPI receive register
}

// EncodeRecord appends r to output as a single frame.
func EncodeRecord(output OutputBuffer, r Record) {
	EncodeFrame(output, func(output OutputBuffer) {
		EncodeVLQUint(output, flag(r.UARTPassed))
		EncodeVLQUint(output, uint32(r.UARTAttempts))
		EncodeVLQUint(output, uint32(r.UARTLast))
		EncodeVLQUint(output, flag(r.SPIPassed))
		EncodeVLQUint(output, uint32(r.SPIValue))
	})
}

// DecodeRecord parses a frame produced by EncodeRecord.
func DecodeRecord(frame []byte) (Record, error) {
	payload, err := DecodeFrame(frame)
	if err != nil {
		return Record{}, err
	}

	var fields [5]uint8
	for i := range fields {
		v, err := DecodeVLQUint(&payload)
		if err != nil {
			return Record{}, err
		}
		if v > 0xFF {
			return Record{}, fmt.Errorf("%w: field %d out of range (%d)", ErrBadFrame, i, v)
		}
		fields[i] = uint8(v)
	}
	if len(payload) != 0 {
		return Record{}, fmt.Errorf("%w: %d trailing bytes", ErrBadFrame, len(payload))
	}

	return Record{
		UARTPassed:   fields[0] != 0,
		UARTAttempts: fields[1],
		UARTLast:     fields[2],
		SPIPassed:    fields[3] != 0,
		SPIValue:     fields[4],
	}, nil
}

// FormatRecord renders r as a console line (without line terminator).
func FormatRecord(r Record) string {
	out := NewScratchOutput()
	EncodeRecord(out, r)
	return RecordPrefix + hex.EncodeToString(out.Result())
}

// ParseRecord is the inverse of FormatRecord. Surrounding whitespace and
// carriage returns are ignored. Lines without the prefix yield ErrNoRecord.
func ParseRecord(line string) (Record, error) {
	line = strings.Trim(line, " \r\n")
	if !strings.HasPrefix(line, strings.TrimSpace(RecordPrefix)) {
		return Record{}, ErrNoRecord
	}
	raw, err := hex.DecodeString(strings.TrimSpace(line[len(RecordPrefix)-1:]))
	if err != nil {
		return Record{}, fmt.Errorf("%w: %v", ErrBadFrame, err)
	}
	return DecodeRecord(raw)
}

func flag(b bool) uint32 {
	if b {
		return 1
	}
	return 0
}

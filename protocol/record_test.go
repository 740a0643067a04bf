package protocol

import (
	"errors"
	"testing"
)

func TestFormatRecordGolden(t *testing.T) {
	testCases := []struct {
		record   Record
		expected string
	}{
		{
			Record{UARTPassed: true, UARTAttempts: 3, UARTLast: 0x55, SPIPassed: true, SPIValue: 0x7F},
			"#R 0b1001035501807f91ef7e",
		},
		{
			Record{UARTAttempts: 10, UARTLast: 0x12, SPIValue: 0x00},
			"#R 0a10000a12000034eb7e",
		},
		{
			Record{UARTPassed: true, UARTAttempts: 1, UARTLast: 0x55, SPIValue: 0xFF},
			"#R 0b1001015500817fc4637e",
		},
	}

	for _, tc := range testCases {
		line := FormatRecord(tc.record)
		if line != tc.expected {
			t.Errorf("FormatRecord(%+v) = %q, expected %q", tc.record, line, tc.expected)
		}

		got, err := ParseRecord(line + "\r")
		if err != nil {
			t.Errorf("ParseRecord(%q) failed: %v", line, err)
			continue
		}
		if got != tc.record {
			t.Errorf("ParseRecord(%q) = %+v, expected %+v", line, got, tc.record)
		}
	}
}

func TestParseRecordRejects(t *testing.T) {
	if _, err := ParseRecord(" -> FAILED."); !errors.Is(err, ErrNoRecord) {
		t.Errorf("expected ErrNoRecord for console text, got %v", err)
	}
	if _, err := ParseRecord("#R zz"); !errors.Is(err, ErrBadFrame) {
		t.Errorf("expected ErrBadFrame for bad hex, got %v", err)
	}
	if _, err := ParseRecord("#R 0b1001035501807f91ee7e"); !errors.Is(err, ErrBadCRC) {
		t.Errorf("expected ErrBadCRC, got %v", err)
	}
}

func TestDecodeRecordTrailingBytes(t *testing.T) {
	output := NewScratchOutput()
	EncodeFrame(output, func(output OutputBuffer) {
		for i := 0; i < 6; i++ {
			EncodeVLQUint(output, 1)
		}
	})
	if _, err := DecodeRecord(output.Result()); !errors.Is(err, ErrBadFrame) {
		t.Errorf("expected ErrBadFrame for extra field, got %v", err)
	}
}

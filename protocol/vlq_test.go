package protocol

import (
	"bytes"
	"testing"
)

func TestVLQEncodeDecodeInt(t *testing.T) {
	testCases := []int32{
		0, 1, -1, 31, -32, 95, 96, 127, -127, 128, -128,
		255, -255, 1000, -1000, 65535, -65535, 1000000, -1000000,
		1 << 30, -(1 << 30),
	}

	for _, expected := range testCases {
		output := NewScratchOutput()
		EncodeVLQInt(output, expected)
		encoded := output.Result()

		data := encoded
		decoded, err := DecodeVLQInt(&data)
		if err != nil {
			t.Errorf("Failed to decode VLQ for value %d: %v", expected, err)
			continue
		}
		if decoded != expected {
			t.Errorf("VLQ mismatch: expected %d, got %d (encoded as %v)", expected, decoded, encoded)
		}
		if len(data) != 0 {
			t.Errorf("VLQ decode left %d bytes for value %d", len(data), expected)
		}
	}
}

func TestVLQKnownEncodings(t *testing.T) {
	testCases := []struct {
		value    uint32
		expected []byte
	}{
		{0x55, []byte{0x55}},
		{95, []byte{0x5F}},
		{96, []byte{0x80, 0x60}},
		{0x7F, []byte{0x80, 0x7F}},
		{0xAA, []byte{0x81, 0x2A}},
		{0xFF, []byte{0x81, 0x7F}},
	}

	for _, tc := range testCases {
		output := NewScratchOutput()
		EncodeVLQUint(output, tc.value)
		if !bytes.Equal(output.Result(), tc.expected) {
			t.Errorf("EncodeVLQUint(%#x) = % x, expected % x", tc.value, output.Result(), tc.expected)
		}
	}
}

func TestVLQSequentialDecode(t *testing.T) {
	output := NewScratchOutput()
	EncodeVLQUint(output, 10)
	EncodeVLQUint(output, 0xFF)
	data := output.Result()

	first, err := DecodeVLQUint(&data)
	if err != nil || first != 10 {
		t.Fatalf("first value: got %d, %v", first, err)
	}
	second, err := DecodeVLQUint(&data)
	if err != nil || second != 0xFF {
		t.Fatalf("second value: got %d, %v", second, err)
	}
	if len(data) != 0 {
		t.Errorf("expected empty remainder, got % x", data)
	}
}

func TestVLQBufferTooSmall(t *testing.T) {
	data := []byte{0x80} // continuation with nothing after it
	if _, err := DecodeVLQInt(&data); err != ErrBufferTooSmall {
		t.Errorf("Expected ErrBufferTooSmall, got %v", err)
	}

	empty := []byte{}
	if _, err := DecodeVLQInt(&empty); err != ErrBufferTooSmall {
		t.Errorf("Expected ErrBufferTooSmall on empty input, got %v", err)
	}
}

func TestVLQTooLong(t *testing.T) {
	data := []byte{0x80, 0x80, 0x80, 0x80, 0x80, 0x01}
	if _, err := DecodeVLQInt(&data); err != ErrInvalidVLQ {
		t.Errorf("Expected ErrInvalidVLQ, got %v", err)
	}
}

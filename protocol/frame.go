package protocol

// CRC16 is the CRC-16/CCITT variant used by Klipper and Anchor message
// blocks, computed over the header and payload.
func CRC16(data []byte) uint16 {
	crc := uint16(0xFFFF)
	for _, b := range data {
		b ^= uint8(crc)
		b ^= b << 4
		w := uint16(b)
		crc = (w<<8 | crc>>8) ^ (w >> 4) ^ (w << 3)
	}
	return crc
}

// EncodeFrame appends one message block whose payload is produced by body.
// The length byte is patched once the payload size is known.
func EncodeFrame(output OutputBuffer, body func(output OutputBuffer)) {
	start := output.CurPosition()
	output.Output([]byte{0, FrameDest})

	body(output)

	output.Update(start, uint8(len(output.DataSince(start))+FrameTrailerLen))
	crc := CRC16(output.DataSince(start))
	output.Output([]byte{uint8(crc >> 8), uint8(crc), FrameSync})
}

// DecodeFrame checks a complete message block and returns its payload.
func DecodeFrame(frame []byte) ([]byte, error) {
	n := len(frame)
	if n < FrameMin || n > FrameMax || int(frame[0]) != n {
		return nil, ErrBadFrame
	}
	if frame[1]&^0x0F != FrameDest || frame[n-1] != FrameSync {
		return nil, ErrBadFrame
	}

	want := uint16(frame[n-FrameTrailerCRC])<<8 | uint16(frame[n-FrameTrailerCRC+1])
	if CRC16(frame[:n-FrameTrailerLen]) != want {
		return nil, ErrBadCRC
	}
	return frame[FrameHeaderSize : n-FrameTrailerLen], nil
}

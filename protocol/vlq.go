package protocol

// vlqShifts are the 7-bit groups above the lowest, most significant first.
var vlqShifts = [...]uint{28, 21, 14, 7}

// EncodeVLQInt writes v using Klipper's variable length quantity encoding.
// A group is emitted only when v does not fit in the groups below it; the
// bias of 3<<n keeps small negative and small positive values short.
func EncodeVLQInt(output OutputBuffer, v int32) {
	for _, shift := range vlqShifts {
		lim := int32(1) << (shift - 2)
		if v < -lim || v >= 3*lim {
			output.Output([]byte{byte(v>>shift)&0x7F | 0x80})
		}
	}
	output.Output([]byte{byte(v) & 0x7F})
}

// EncodeVLQUint writes an unsigned value; it shares the signed wire format
func EncodeVLQUint(output OutputBuffer, v uint32) {
	EncodeVLQInt(output, int32(v))
}

// DecodeVLQInt reads one value from the front of *data and advances it.
func DecodeVLQInt(data *[]byte) (int32, error) {
	buf := *data
	if len(buf) == 0 {
		return 0, ErrBufferTooSmall
	}

	c := uint32(buf[0])
	v := c & 0x7F
	if c&0x60 == 0x60 {
		v |= ^uint32(0x1F) // sign extend
	}

	i := 1
	for ; c&0x80 != 0; i++ {
		if i >= len(buf) {
			return 0, ErrBufferTooSmall
		}
		if i > len(vlqShifts) {
			return 0, ErrInvalidVLQ
		}
		c = uint32(buf[i])
		v = v<<7 | c&0x7F
	}

	*data = buf[i:]
	return int32(v), nil
}

// DecodeVLQUint reads one unsigned value from the front of *data
func DecodeVLQUint(data *[]byte) (uint32, error) {
	v, err := DecodeVLQInt(data)
	return uint32(v), err
}

package core

const hexDigits = "0123456789ABCDEF"

// hex2 formats b as two upper-case hex digits without using fmt
func hex2(b uint8) string {
	return string([]byte{hexDigits[b>>4], hexDigits[b&0x0F]})
}

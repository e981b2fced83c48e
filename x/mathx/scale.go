package mathx

// Scale8 scales a colour channel by a Q16 level and an 8-bit brightness.
func Scale8(ch uint8, level uint16, brightness uint8) uint8 {
	v := uint32(ch) * uint32(level) / 0xffff
	return uint8(v * uint32(brightness) / 0xff)
}

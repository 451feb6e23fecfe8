package codec

// MaxVarIntLen is the longest VarInt that still fits in 64 bits.
const MaxVarIntLen = 10

// DecodeVarInt reads an unsigned LEB128 value starting at offset and returns it
// with the offset of the first byte after it.
func DecodeVarInt(buf []byte, offset int) (uint64, int, error) {
	var value uint64
	var shift uint
	off := offset
	for {
		if off < 0 || off >= len(buf) {
			return 0, offset, truncated("varint", buf, offset, off-offset+1)
		}
		b := buf[off]
		off++
		// The tenth byte may only carry the top bit of a uint64.
		if shift == 63 && b > 1 {
			return 0, offset, &DecodeError{Kind: KindValueTooLarge, Field: "varint", Offset: offset}
		}
		value |= uint64(b&0x7f) << shift
		if b&0x80 == 0 {
			return value, off, nil
		}
		shift += 7
		if shift >= 64 {
			return 0, offset, &DecodeError{Kind: KindValueTooLarge, Field: "varint", Offset: offset}
		}
	}
}

// AppendVarInt appends the LEB128 encoding of v to buf.
func AppendVarInt(buf []byte, v uint64) []byte {
	for v >= 0x80 {
		buf = append(buf, byte(v)|0x80)
		v >>= 7
	}
	return append(buf, byte(v))
}

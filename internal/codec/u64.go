package codec

import (
	"encoding/binary"

	"github.com/julianstephens/horo/internal/models"
)

const u64Width = 8

// DecodeU64LE reads an 8-byte little-endian unsigned integer at offset.
func DecodeU64LE(buf []byte, offset int) (uint64, error) {
	return decodeU64Field(buf, offset, "u64")
}

func decodeU64Field(buf []byte, offset int, field string) (uint64, error) {
	if offset < 0 || offset+u64Width > len(buf) {
		return 0, truncated(field, buf, offset, u64Width)
	}
	return binary.LittleEndian.Uint64(buf[offset : offset+u64Width]), nil
}

// CheckPrecision returns ErrPrecisionLoss when v cannot round-trip through a
// float64. The value itself is always exact on this side.
func CheckPrecision(v uint64) error {
	if v > models.MaxSafeInteger {
		return ErrPrecisionLoss
	}
	return nil
}

// AppendU64LE appends v as 8 little-endian bytes.
func AppendU64LE(buf []byte, v uint64) []byte {
	return binary.LittleEndian.AppendUint64(buf, v)
}

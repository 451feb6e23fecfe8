package codec

import (
	"time"
	"unicode/utf8"

	"github.com/julianstephens/horo/internal/constants"
	"github.com/julianstephens/horo/internal/logger"
	"github.com/julianstephens/horo/internal/models"
)

// DecodeRecord decodes one claim record at offset. On failure the returned
// offset equals the input offset so the caller can tell nothing was consumed.
func DecodeRecord(buf []byte, offset int) (models.ClaimRecord, int, error) {
	rec, next, err := decodeRecord(buf, offset)
	if err != nil {
		return models.ClaimRecord{}, offset, err
	}
	return rec, next, nil
}

func decodeRecord(buf []byte, offset int) (models.ClaimRecord, int, error) {
	var rec models.ClaimRecord
	off := offset

	if off < 0 || off >= len(buf) {
		return rec, offset, truncated("day_of_week", buf, off, 1)
	}
	day := buf[off]
	if day > 6 {
		return rec, offset, &DecodeError{Kind: KindInvalidDayOfWeek, Field: "day_of_week", Offset: off, Value: uint64(day)}
	}
	rec.DayOfWeek = time.Weekday(day)
	off++

	var err error
	if rec.AmountClaimed, off, err = readU64(buf, off, "amount_claimed"); err != nil {
		return rec, offset, err
	}
	if rec.Timestamp, off, err = readU64(buf, off, "timestamp"); err != nil {
		return rec, offset, err
	}
	if rec.Label, off, err = readLabel(buf, off); err != nil {
		return rec, offset, err
	}
	if rec.ClaimDay, off, err = readU64(buf, off, "claim_day"); err != nil {
		return rec, offset, err
	}
	if rec.StreakAtClaim, off, err = readU64(buf, off, "streak_at_claim"); err != nil {
		return rec, offset, err
	}

	return rec, off, nil
}

func readU64(buf []byte, off int, field string) (uint64, int, error) {
	v, err := decodeU64Field(buf, off, field)
	if err != nil {
		return 0, off, err
	}
	if CheckPrecision(v) != nil {
		logger.Warn("u64 exceeds safe integer range, precision may be lost downstream", "field", field, "offset", off, "value", v)
	}
	return v, off + u64Width, nil
}

// readLabel reads a VarInt-prefixed UTF-8 string. Bad text is not fatal: the
// bytes are still consumed and the label becomes constants.UnknownLabel.
func readLabel(buf []byte, off int) (string, int, error) {
	n, next, err := DecodeVarInt(buf, off)
	if err != nil {
		return "", off, err
	}
	if n > uint64(len(buf)-next) {
		return "", off, truncated("label", buf, next, clampInt(n))
	}
	end := next + int(n)
	raw := buf[next:end]
	if !utf8.Valid(raw) {
		logger.Warn("label is not valid UTF-8", "offset", next, "length", n)
		return constants.UnknownLabel, end, nil
	}
	return string(raw), end, nil
}

func clampInt(n uint64) int {
	const maxInt = int(^uint(0) >> 1)
	if n > uint64(maxInt) {
		return maxInt
	}
	return int(n)
}

// AppendRecord appends the wire encoding of rec to buf.
func AppendRecord(buf []byte, rec models.ClaimRecord) []byte {
	buf = append(buf, byte(rec.DayOfWeek))
	buf = AppendU64LE(buf, rec.AmountClaimed)
	buf = AppendU64LE(buf, rec.Timestamp)
	buf = AppendVarInt(buf, uint64(len(rec.Label)))
	buf = append(buf, rec.Label...)
	buf = AppendU64LE(buf, rec.ClaimDay)
	buf = AppendU64LE(buf, rec.StreakAtClaim)
	return buf
}

package codec

import (
	"errors"

	"github.com/julianstephens/horo/internal/logger"
	"github.com/julianstephens/horo/internal/models"
)

// Report describes a collection decode pass.
type Report struct {
	Declared int          // record count from the VarInt header
	Decoded  int          // records successfully decoded
	Consumed int          // bytes consumed, header included
	Stopped  *DecodeError // why the pass ended early, nil if it completed
}

// Complete reports whether every declared record was decoded.
func (r Report) Complete() bool {
	return r.Stopped == nil && r.Decoded == r.Declared
}

// DecodeCollection decodes a weekly-progress buffer. It never fails: a bad
// header yields an empty map, a bad record ends the pass and keeps what was
// decoded before it.
func DecodeCollection(buf []byte) models.WeeklyProgress {
	progress, report := Inspect(buf)
	if report.Stopped != nil {
		logger.Warn("weekly progress decode stopped early",
			"decoded", report.Decoded, "declared", report.Declared, "error", report.Stopped)
	}
	return progress
}

// Inspect decodes a weekly-progress buffer and reports where decoding stopped.
func Inspect(buf []byte) (models.WeeklyProgress, Report) {
	progress := models.WeeklyProgress{}
	var report Report
	if len(buf) == 0 {
		return progress, report
	}

	count, off, err := DecodeVarInt(buf, 0)
	if err != nil {
		report.Stopped = asDecodeError(err)
		return models.WeeklyProgress{}, report
	}
	report.Declared = clampInt(count)
	report.Consumed = off

	for i := uint64(0); i < count; i++ {
		rec, next, err := DecodeRecord(buf, off)
		if err != nil {
			// Alignment is lost after a bad record, so nothing after it can be trusted.
			report.Stopped = asDecodeError(err)
			break
		}
		progress[rec.DayOfWeek] = rec
		report.Decoded++
		off = next
		report.Consumed = off
		logger.Debug("decoded claim", "index", i, "day", rec.DayOfWeek, "label", rec.Label)
	}

	return progress, report
}

func asDecodeError(err error) *DecodeError {
	var de *DecodeError
	if errors.As(err, &de) {
		return de
	}
	return &DecodeError{Kind: KindTruncated, Field: "record"}
}

// AppendCollection appends the wire encoding of records to buf.
func AppendCollection(buf []byte, records []models.ClaimRecord) []byte {
	buf = AppendVarInt(buf, uint64(len(records)))
	for _, rec := range records {
		buf = AppendRecord(buf, rec)
	}
	return buf
}

package codec

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"pgregory.net/rapid"

	"github.com/julianstephens/horo/internal/constants"
	"github.com/julianstephens/horo/internal/models"
)

func recordGen() *rapid.Generator[models.ClaimRecord] {
	return rapid.Custom(func(t *rapid.T) models.ClaimRecord {
		return models.ClaimRecord{
			DayOfWeek:     time.Weekday(rapid.IntRange(0, 6).Draw(t, "day")),
			AmountClaimed: rapid.Uint64Range(0, math.MaxUint64).Draw(t, "amount"),
			Timestamp:     rapid.Uint64Range(0, math.MaxUint64).Draw(t, "timestamp"),
			Label:         rapid.String().Draw(t, "label"),
			ClaimDay:      rapid.Uint64Range(0, math.MaxUint64).Draw(t, "claim_day"),
			StreakAtClaim: rapid.Uint64Range(0, math.MaxUint64).Draw(t, "streak"),
		}
	})
}

func TestDecodeRecord(t *testing.T) {
	want := models.ClaimRecord{
		DayOfWeek:     time.Wednesday,
		AmountClaimed: 15_000_000,
		Timestamp:     1_736_352_000_000,
		Label:         "aries",
		ClaimDay:      20096,
		StreakAtClaim: 3,
	}
	buf := AppendRecord(nil, want)

	got, next, err := DecodeRecord(buf, 0)
	if err != nil {
		t.Fatalf("DecodeRecord() unexpected error: %v", err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("DecodeRecord() mismatch (-want +got):\n%s", diff)
	}
	if next != len(buf) {
		t.Errorf("DecodeRecord() next = %d, want %d", next, len(buf))
	}
	if got.DisplayAmount() != 15 {
		t.Errorf("DisplayAmount() = %d, want 15", got.DisplayAmount())
	}
}

func TestDecodeRecordEmptyLabel(t *testing.T) {
	rec := models.ClaimRecord{DayOfWeek: time.Sunday, AmountClaimed: 10_000_000}
	got, _, err := DecodeRecord(AppendRecord(nil, rec), 0)
	if err != nil {
		t.Fatalf("DecodeRecord() unexpected error: %v", err)
	}
	if got.Label != "" {
		t.Errorf("Label = %q, want empty", got.Label)
	}
}

func TestDecodeRecordInvalidDayOfWeek(t *testing.T) {
	buf := AppendRecord(nil, models.ClaimRecord{Label: "leo"})
	buf[0] = 7

	rec, next, err := DecodeRecord(buf, 0)
	if !errors.Is(err, ErrInvalidDayOfWeek) {
		t.Fatalf("DecodeRecord() error = %v, want ErrInvalidDayOfWeek", err)
	}
	if next != 0 {
		t.Errorf("DecodeRecord() next = %d, want 0", next)
	}
	if rec != (models.ClaimRecord{}) {
		t.Errorf("DecodeRecord() returned non-zero record on failure: %+v", rec)
	}
}

func TestDecodeRecordInvalidUTF8Label(t *testing.T) {
	rec := models.ClaimRecord{DayOfWeek: time.Friday, Label: "\xff\xfe\xfd", ClaimDay: 42, StreakAtClaim: 2}
	buf := AppendRecord(nil, rec)

	got, next, err := DecodeRecord(buf, 0)
	if err != nil {
		t.Fatalf("DecodeRecord() unexpected error: %v", err)
	}
	if got.Label != constants.UnknownLabel {
		t.Errorf("Label = %q, want %q", got.Label, constants.UnknownLabel)
	}
	// The bad label must still be skipped so later fields line up.
	if got.ClaimDay != 42 || got.StreakAtClaim != 2 {
		t.Errorf("fields after label misaligned: %+v", got)
	}
	if next != len(buf) {
		t.Errorf("DecodeRecord() next = %d, want %d", next, len(buf))
	}
}

func TestDecodeRecordLabelLengthBeyondBuffer(t *testing.T) {
	buf := []byte{0x01}
	buf = AppendU64LE(buf, 1)
	buf = AppendU64LE(buf, 2)
	buf = AppendVarInt(buf, 1<<40)

	_, next, err := DecodeRecord(buf, 0)
	if !errors.Is(err, ErrTruncated) {
		t.Fatalf("DecodeRecord() error = %v, want ErrTruncated", err)
	}
	if next != 0 {
		t.Errorf("DecodeRecord() next = %d, want 0", next)
	}
}

func TestRecordRoundTrip(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		want := recordGen().Draw(t, "record")
		buf := AppendRecord(nil, want)

		got, next, err := DecodeRecord(buf, 0)
		if err != nil {
			t.Fatalf("DecodeRecord() error: %v", err)
		}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Fatalf("DecodeRecord() mismatch (-want +got):\n%s", diff)
		}
		if next != len(buf) {
			t.Fatalf("DecodeRecord() next = %d, want %d", next, len(buf))
		}
	})
}

func TestDecodeRecordEveryPrefixFails(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		buf := AppendRecord(nil, recordGen().Draw(t, "record"))

		for cut := 0; cut < len(buf); cut++ {
			rec, next, err := DecodeRecord(buf[:cut], 0)
			if err == nil {
				t.Fatalf("DecodeRecord(prefix %d of %d) succeeded", cut, len(buf))
			}
			if next != 0 {
				t.Fatalf("DecodeRecord(prefix %d) next = %d, want 0", cut, next)
			}
			if rec != (models.ClaimRecord{}) {
				t.Fatalf("DecodeRecord(prefix %d) returned a partial record", cut)
			}
		}
	})
}

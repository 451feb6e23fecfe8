package codec

import (
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"pgregory.net/rapid"

	"github.com/julianstephens/horo/internal/models"
)

// scenarioBuffer is a two-record weekly progress response: aries claimed on
// Sunday for 1 token, then leo on Monday.
func scenarioBuffer() []byte {
	buf := []byte{0x02, 0x00, 0x40, 0x42, 0x0f, 0x00, 0x00, 0x00, 0x00, 0x00}
	buf = AppendU64LE(buf, 1_736_035_200_000)
	buf = append(buf, 0x05, 'a', 'r', 'i', 'e', 's')
	buf = AppendU64LE(buf, 20093)
	buf = AppendU64LE(buf, 1)
	return AppendRecord(buf, models.ClaimRecord{
		DayOfWeek:     time.Monday,
		AmountClaimed: 10_000_000,
		Timestamp:     1_736_121_600_000,
		Label:         "leo",
		ClaimDay:      20094,
		StreakAtClaim: 2,
	})
}

func TestDecodeCollectionScenario(t *testing.T) {
	progress := DecodeCollection(scenarioBuffer())

	if len(progress) != 2 || !progress.Has(time.Sunday) || !progress.Has(time.Monday) {
		t.Fatalf("DecodeCollection() keys = %v, want [Sunday Monday]", progress.Days())
	}
	sunday := progress[time.Sunday]
	if sunday.DisplayAmount() != 1 {
		t.Errorf("Sunday DisplayAmount() = %d, want 1", sunday.DisplayAmount())
	}
	if sunday.Label != "aries" {
		t.Errorf("Sunday Label = %q, want aries", sunday.Label)
	}
	if progress[time.Monday].Label != "leo" {
		t.Errorf("Monday Label = %q, want leo", progress[time.Monday].Label)
	}
}

func TestDecodeCollectionEmpty(t *testing.T) {
	progress, report := Inspect(nil)
	if len(progress) != 0 {
		t.Errorf("Inspect(nil) returned %d records", len(progress))
	}
	if !report.Complete() {
		t.Errorf("Inspect(nil) report = %+v, want complete", report)
	}
}

func TestDecodeCollectionBadHeader(t *testing.T) {
	buf := []byte{0x80, 0x80, 0x80, 0x80, 0x80, 0x80, 0x80, 0x80, 0x80, 0x80, 0x80}
	progress, report := Inspect(buf)
	if len(progress) != 0 {
		t.Errorf("Inspect() returned %d records for a bad header", len(progress))
	}
	if report.Stopped == nil || !errors.Is(report.Stopped, ErrValueTooLarge) {
		t.Errorf("Inspect() stopped = %v, want ErrValueTooLarge", report.Stopped)
	}
}

func TestDecodeCollectionLaterRecordOverwrites(t *testing.T) {
	buf := AppendCollection(nil, []models.ClaimRecord{
		{DayOfWeek: time.Tuesday, Label: "first"},
		{DayOfWeek: time.Tuesday, Label: "second"},
	})

	progress := DecodeCollection(buf)
	if len(progress) != 1 {
		t.Fatalf("DecodeCollection() len = %d, want 1", len(progress))
	}
	if progress[time.Tuesday].Label != "second" {
		t.Errorf("Tuesday Label = %q, want second", progress[time.Tuesday].Label)
	}
}

func TestDecodeCollectionPartialResults(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		n := rapid.IntRange(0, 7).Draw(t, "n")
		records := make([]models.ClaimRecord, n)
		for i := range records {
			records[i] = recordGen().Draw(t, "record")
			// Distinct weekdays keep the expected map size equal to n.
			records[i].DayOfWeek = time.Weekday(i)
		}
		garbage := rapid.SliceOfN(rapid.Byte(), 0, 40).Draw(t, "garbage")

		// Declare one more record than is present, then start the tail with an
		// out-of-range weekday so it can never parse.
		buf := AppendVarInt(nil, uint64(n+1))
		for _, rec := range records {
			buf = AppendRecord(buf, rec)
		}
		buf = append(buf, 0xff)
		buf = append(buf, garbage...)

		progress, report := Inspect(buf)
		if report.Decoded != n || len(progress) != n {
			t.Fatalf("Inspect() decoded %d (%d keys), want %d", report.Decoded, len(progress), n)
		}
		for _, rec := range records {
			if diff := cmp.Diff(rec, progress[rec.DayOfWeek]); diff != "" {
				t.Fatalf("record for %s mismatch (-want +got):\n%s", rec.DayOfWeek, diff)
			}
		}
		if report.Stopped == nil {
			t.Fatal("Inspect() report.Stopped = nil, want a decode error")
		}
	})
}

func TestDecodeCollectionTruncatedTail(t *testing.T) {
	buf := scenarioBuffer()
	for cut := 1; cut < len(buf); cut++ {
		progress := DecodeCollection(buf[:cut])
		if len(progress) > 1 {
			t.Fatalf("prefix %d decoded %d records, want at most 1", cut, len(progress))
		}
	}
}

func TestDecodeCollectionIdempotent(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		buf := rapid.SliceOfN(rapid.Byte(), 0, 200).Draw(t, "buf")
		if rapid.Bool().Draw(t, "valid") {
			buf = AppendCollection(nil, rapid.SliceOfN(recordGen(), 0, 7).Draw(t, "records"))
		}

		first := DecodeCollection(buf)
		second := DecodeCollection(buf)
		if diff := cmp.Diff(first, second); diff != "" {
			t.Fatalf("DecodeCollection() not idempotent (-first +second):\n%s", diff)
		}
	})
}

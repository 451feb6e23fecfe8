package clock

import (
	"context"
	"errors"
	"testing"
	"time"

	"pgregory.net/rapid"
)

type fakeSource struct {
	ms  int64
	err error
}

func (f fakeSource) ClockTimestampMs(ctx context.Context) (int64, error) {
	return f.ms, f.err
}

func dayStart(year int, month time.Month, day int) int64 {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC).UnixMilli()
}

func TestFromMillis(t *testing.T) {
	tests := []struct {
		name          string
		ms            int64
		wantDay       time.Weekday
		wantDays      int64
		wantWeek      int64
		wantYear      int
		wantWeekStart string
	}{
		{"epoch is thursday", 0, time.Thursday, 0, -1, 1969, "1969-12-29"},
		{"sunday 2025-01-05", dayStart(2025, 1, 5), time.Sunday, 20093, 2870, 2025, "2025-01-06"},
		{"saturday 2025-01-11 late", dayStart(2025, 1, 11) + 86_399_999, time.Saturday, 20099, 2870, 2025, "2025-01-06"},
		{"anchor day", dayStart(2024, 1, 1), time.Monday, 19723, 2817, 2024, "2024-01-01"},
		// Fixed 365-day years put the last day of leap year 2024 into 2025.
		{"leap year drift", dayStart(2024, 12, 31), time.Tuesday, 20088, 2869, 2025, "2024-12-30"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := FromMillis(tt.ms)
			if r.DayOfWeek != tt.wantDay {
				t.Errorf("DayOfWeek = %s, want %s", r.DayOfWeek, tt.wantDay)
			}
			if r.DaysSinceEpoch != tt.wantDays {
				t.Errorf("DaysSinceEpoch = %d, want %d", r.DaysSinceEpoch, tt.wantDays)
			}
			if r.WeekNumber != tt.wantWeek {
				t.Errorf("WeekNumber = %d, want %d", r.WeekNumber, tt.wantWeek)
			}
			if r.Year != tt.wantYear {
				t.Errorf("Year = %d, want %d", r.Year, tt.wantYear)
			}
			if got := r.WeekStartDate(); got != tt.wantWeekStart {
				t.Errorf("WeekStartDate() = %s, want %s", got, tt.wantWeekStart)
			}
			if !r.IsLoaded {
				t.Error("IsLoaded = false, want true")
			}
		})
	}
}

func TestDayOfWeekMatchesTimePackage(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		ms := rapid.Int64Range(0, 1<<45).Draw(t, "ms")
		r := FromMillis(ms)
		if want := time.UnixMilli(ms).UTC().Weekday(); r.DayOfWeek != want {
			t.Fatalf("FromMillis(%d).DayOfWeek = %s, want %s", ms, r.DayOfWeek, want)
		}
		if r.DayOfWeek != time.Weekday((r.DaysSinceEpoch+4)%7) {
			t.Fatalf("DayOfWeek %s breaks (days+4) mod 7 for day %d", r.DayOfWeek, r.DaysSinceEpoch)
		}
	})
}

func TestDateFor(t *testing.T) {
	r := FromMillis(dayStart(2025, 1, 8) + 5*3600*1000) // Wednesday
	tests := map[time.Weekday]string{
		time.Sunday:    "2025-01-05",
		time.Wednesday: "2025-01-08",
		time.Saturday:  "2025-01-11",
	}
	for day, want := range tests {
		if got := r.DateStringFor(day); got != want {
			t.Errorf("DateStringFor(%s) = %s, want %s", day, got, want)
		}
	}
}

func TestPrimaryAndFallbackAgree(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		ms := rapid.Int64Range(0, 1<<52).Draw(t, "ms")
		ctx := context.Background()

		primary := NewReconciler(fakeSource{ms: ms}).Get(ctx)
		fallback := NewReconciler(fakeSource{err: errors.New("offline")},
			WithNow(func() time.Time { return time.UnixMilli(ms) })).Get(ctx)

		if primary.Source != SourceLedger || fallback.Source != SourceLocal {
			t.Fatalf("sources = %s/%s, want ledger/local", primary.Source, fallback.Source)
		}
		if primary.DayOfWeek != fallback.DayOfWeek ||
			primary.DaysSinceEpoch != fallback.DaysSinceEpoch ||
			primary.WeekNumber != fallback.WeekNumber ||
			primary.Year != fallback.Year ||
			primary.TimestampMs != fallback.TimestampMs {
			t.Fatalf("primary %+v and fallback %+v disagree", primary, fallback)
		}
	})
}

func TestReconcilerFallback(t *testing.T) {
	now := time.Date(2025, 3, 21, 12, 0, 0, 0, time.FixedZone("UTC+9", 9*3600))

	t.Run("source error", func(t *testing.T) {
		r := NewReconciler(fakeSource{err: errors.New("connection refused")}, WithNow(func() time.Time { return now }))
		got := r.Get(context.Background())
		if got.Err != "connection refused" {
			t.Errorf("Err = %q, want connection refused", got.Err)
		}
		if !got.IsLoaded {
			t.Error("IsLoaded = false, want true")
		}
		if got.TimestampMs != now.UnixMilli() {
			t.Errorf("TimestampMs = %d, want %d", got.TimestampMs, now.UnixMilli())
		}
		if got.DayOfWeek != time.Friday {
			t.Errorf("DayOfWeek = %s, want Friday", got.DayOfWeek)
		}
	})

	t.Run("no source", func(t *testing.T) {
		got := NewReconciler(nil, WithNow(func() time.Time { return now })).Get(context.Background())
		if got.Err != ErrNoSource.Error() {
			t.Errorf("Err = %q, want %q", got.Err, ErrNoSource.Error())
		}
		if got.Source != SourceLocal {
			t.Errorf("Source = %s, want local", got.Source)
		}
	})
}

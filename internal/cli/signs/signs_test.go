package signs

import (
	"bytes"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	gokeyring "github.com/zalando/go-keyring"

	"github.com/julianstephens/horo/internal/cli"
	"github.com/julianstephens/horo/internal/ledger/ledgertest"
	"github.com/julianstephens/horo/internal/models"
	"github.com/julianstephens/horo/internal/storage/sqlite"
)

// Tuesday 2025-01-07 12:00 UTC; the lock week starts Monday 2025-01-06.
const tuesdayMs = 1736251200000

func setupTestDB(t *testing.T) (*cli.Context, *bytes.Buffer) {
	t.Helper()
	gokeyring.MockInit()

	store := sqlite.NewStore(filepath.Join(t.TempDir(), "test.db"))
	if err := store.Init(); err != nil {
		t.Fatalf("failed to init storage: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	node := ledgertest.NewNode(t, tuesdayMs)
	var out bytes.Buffer
	return &cli.Context{Store: store, Out: &out, RPCURL: node.URL}, &out
}

func TestSignSelectCmd_LocksWeek(t *testing.T) {
	ctx, out := setupTestDB(t)

	if err := (&SignSelectCmd{Name: "Leo", System: "western"}).Run(ctx); err != nil {
		t.Fatalf("select failed: %v", err)
	}
	if !strings.Contains(out.String(), "leo selected for the week of 2025-01-06") {
		t.Errorf("unexpected output: %s", out.String())
	}

	sel, err := ctx.Store.GetSelection()
	if err != nil || sel.Sign != "leo" || sel.System != models.SystemWestern {
		t.Errorf("GetSelection() = %+v, %v", sel, err)
	}
	locked, _ := ctx.Store.GetWeekSign("2025-01-06")
	if locked.Sign != "leo" {
		t.Errorf("week lock = %+v, want leo", locked)
	}

	// Re-selecting the same sign is allowed; a different one is refused.
	if err := (&SignSelectCmd{Name: "leo", System: "western"}).Run(ctx); err != nil {
		t.Errorf("re-select same sign failed: %v", err)
	}
	err = (&SignSelectCmd{Name: "virgo", System: "western"}).Run(ctx)
	if err == nil || !strings.Contains(err.Error(), "locked") {
		t.Errorf("changing locked sign error = %v, want lock error", err)
	}
	sel, _ = ctx.Store.GetSelection()
	if sel.Sign != "leo" {
		t.Errorf("selection changed to %q despite lock", sel.Sign)
	}
}

func TestSignSelectCmd_Picker(t *testing.T) {
	ctx, _ := setupTestDB(t)

	var suggested string
	cmd := &SignSelectCmd{System: "chinese", pick: func(system models.ZodiacSystem, s string) (string, error) {
		if system != models.SystemChinese {
			t.Errorf("picker system = %s, want chinese", system)
		}
		suggested = s
		return "dragon", nil
	}}
	if err := cmd.Run(ctx); err != nil {
		t.Fatalf("select failed: %v", err)
	}
	if suggested != "capricorn" {
		t.Errorf("suggested = %q, want the season of the ledger date (capricorn)", suggested)
	}
	sel, _ := ctx.Store.GetSelection()
	if sel.Sign != "dragon" || sel.System != models.SystemChinese {
		t.Errorf("selection = %+v", sel)
	}
}

func TestSignSelectCmd_Errors(t *testing.T) {
	tests := []struct {
		name string
		cmd  *SignSelectCmd
	}{
		{"unknown system", &SignSelectCmd{Name: "leo", System: "mayan"}},
		{"unknown sign", &SignSelectCmd{Name: "dragon", System: "western"}},
		{"picker aborted", &SignSelectCmd{System: "western", pick: func(models.ZodiacSystem, string) (string, error) {
			return "", errors.New("user aborted")
		}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, _ := setupTestDB(t)
			if err := tt.cmd.Run(ctx); err == nil {
				t.Fatal("expected error")
			}
			if locked, _ := ctx.Store.GetWeekSign("2025-01-06"); locked.Sign != "" {
				t.Errorf("week locked on error: %+v", locked)
			}
		})
	}
}

func TestSignShowCmd(t *testing.T) {
	ctx, out := setupTestDB(t)

	if err := (&SignShowCmd{}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "No sign selected") || !strings.Contains(out.String(), "not locked") {
		t.Errorf("unexpected output: %s", out.String())
	}

	out.Reset()
	if err := (&SignSelectCmd{Name: "aries", System: "western"}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	out.Reset()
	if err := (&SignShowCmd{}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "Selected: ♈ aries (western)") || !strings.Contains(out.String(), "locked to aries") {
		t.Errorf("unexpected output: %s", out.String())
	}
}

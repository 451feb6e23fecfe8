package sqlite

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/julianstephens/horo/internal/constants"
	"github.com/julianstephens/horo/internal/models"
	"github.com/julianstephens/horo/internal/storage"
)

func setupTestStore(t *testing.T) *Store {
	t.Helper()
	store := NewStore(filepath.Join(t.TempDir(), "nested", "horo.db"))
	if err := store.Init(); err != nil {
		t.Fatalf("Init() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestInitAppliesDefaults(t *testing.T) {
	store := setupTestStore(t)

	settings, err := store.GetSettings()
	if err != nil {
		t.Fatalf("GetSettings() failed: %v", err)
	}
	if settings.RPCURL != constants.DefaultRPCURL || settings.PollIntervalSec != constants.DefaultPollIntervalSec {
		t.Errorf("defaults not applied: %+v", settings)
	}
}

func TestInitKeepsExistingSettings(t *testing.T) {
	store := setupTestStore(t)

	settings, _ := store.GetSettings()
	settings.PackageID = "0xabc"
	settings.PollIntervalSec = 30
	if err := store.SaveSettings(settings); err != nil {
		t.Fatal(err)
	}
	if err := store.Init(); err != nil {
		t.Fatalf("second Init() failed: %v", err)
	}

	got, _ := store.GetSettings()
	if got.PackageID != "0xabc" || got.PollIntervalSec != 30 {
		t.Errorf("Init() overwrote settings: %+v", got)
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "horo.db")

	if err := NewStore(path).Load(); !errors.Is(err, storage.ErrNotInitialized) {
		t.Errorf("Load() before Init error = %v, want ErrNotInitialized", err)
	}

	initial := NewStore(path)
	if err := initial.Init(); err != nil {
		t.Fatal(err)
	}
	initial.Close()

	store := NewStore(path)
	if err := store.Load(); err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	defer store.Close()
	if store.GetConfigPath() != path {
		t.Errorf("GetConfigPath() = %q", store.GetConfigPath())
	}
	if _, err := store.GetSettings(); err != nil {
		t.Errorf("GetSettings() after Load failed: %v", err)
	}
}

func TestSelection(t *testing.T) {
	store := setupTestStore(t)

	if _, err := store.GetSelection(); !errors.Is(err, storage.ErrNoSelection) {
		t.Errorf("GetSelection() error = %v, want ErrNoSelection", err)
	}

	for _, sel := range []models.Selection{
		{Sign: "aries", System: models.SystemWestern},
		{Sign: "dragon", System: models.SystemChinese},
	} {
		if err := store.SaveSelection(sel); err != nil {
			t.Fatalf("SaveSelection() failed: %v", err)
		}
		got, err := store.GetSelection()
		if err != nil {
			t.Fatal(err)
		}
		if got != sel {
			t.Errorf("GetSelection() = %+v, want %+v", got, sel)
		}
	}
}

func TestWeekSignLock(t *testing.T) {
	store := setupTestStore(t)
	week := "2025-01-06"

	got, err := store.GetWeekSign(week)
	if err != nil || got.Sign != "" {
		t.Fatalf("GetWeekSign() = %+v, %v; want empty", got, err)
	}

	leo := models.Selection{Sign: "leo", System: models.SystemWestern}
	if err := store.SetWeekSign(week, leo); err != nil {
		t.Fatal(err)
	}
	if err := store.SetWeekSign(week, models.Selection{Sign: "virgo", System: models.SystemWestern}); err != nil {
		t.Fatal(err)
	}
	if got, _ = store.GetWeekSign(week); got != leo {
		t.Errorf("GetWeekSign() = %+v, want first lock %+v", got, leo)
	}

	if got, _ = store.GetWeekSign("2025-01-13"); got.Sign != "" {
		t.Errorf("next week should be unlocked, got %+v", got)
	}
}

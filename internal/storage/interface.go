// Package storage persists horo's local state: settings, the last selected
// sign and the per-week sign lock. Claim records are never stored locally.
package storage

import (
	"errors"

	"github.com/julianstephens/horo/internal/models"
)

var (
	// ErrNotInitialized is returned by Load when the database does not exist yet.
	ErrNotInitialized = errors.New("storage not initialized, run 'horo init' first")
	// ErrNoSelection is returned when no sign has been selected yet.
	ErrNoSelection = errors.New("no sign selected")
)

type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Settings
	GetSettings() (models.Settings, error)
	SaveSettings(models.Settings) error

	// Sign selection
	GetSelection() (models.Selection, error)
	SaveSelection(models.Selection) error

	// Week lock, keyed by the week's Monday (YYYY-MM-DD). GetWeekSign returns
	// an empty selection when the week is unlocked.
	GetWeekSign(weekStart string) (models.Selection, error)
	SetWeekSign(weekStart string, sel models.Selection) error

	// Utils
	GetConfigPath() string
}

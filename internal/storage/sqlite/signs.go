package sqlite

import (
	"database/sql"
	"errors"
	"time"

	"github.com/julianstephens/horo/internal/models"
	"github.com/julianstephens/horo/internal/storage"
)

func (s *Store) GetSelection() (models.Selection, error) {
	var sel models.Selection
	var system string
	err := s.db.QueryRow("SELECT sign, system FROM selection WHERE id = 1").Scan(&sel.Sign, &system)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Selection{}, storage.ErrNoSelection
	}
	if err != nil {
		return models.Selection{}, err
	}
	sel.System = models.ZodiacSystem(system)
	return sel, nil
}

func (s *Store) SaveSelection(sel models.Selection) error {
	_, err := s.db.Exec(`
		INSERT INTO selection (id, sign, system, updated_at) VALUES (1, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET sign = excluded.sign, system = excluded.system, updated_at = excluded.updated_at`,
		sel.Sign, string(sel.System), time.Now().UTC().Format(time.RFC3339))
	return err
}

func (s *Store) GetWeekSign(weekStart string) (models.Selection, error) {
	var sel models.Selection
	var system string
	err := s.db.QueryRow("SELECT sign, system FROM week_signs WHERE week_start = ?", weekStart).Scan(&sel.Sign, &system)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Selection{}, nil
	}
	if err != nil {
		return models.Selection{}, err
	}
	sel.System = models.ZodiacSystem(system)
	return sel, nil
}

// SetWeekSign locks a sign for the week. An existing lock is kept; callers
// check rewards.SignChangeAllowed before calling.
func (s *Store) SetWeekSign(weekStart string, sel models.Selection) error {
	_, err := s.db.Exec(
		"INSERT OR IGNORE INTO week_signs (week_start, sign, system, locked_at) VALUES (?, ?, ?, ?)",
		weekStart, sel.Sign, string(sel.System), time.Now().UTC().Format(time.RFC3339))
	return err
}

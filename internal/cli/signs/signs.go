// Package signs holds the zodiac sign commands. The sign chosen for a week is
// locked once picked so every claim in that week carries the same sign.
package signs

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/horo/internal/cli"
	"github.com/julianstephens/horo/internal/models"
	"github.com/julianstephens/horo/internal/rewards"
	"github.com/julianstephens/horo/internal/storage"
)

type SignSelectCmd struct {
	Name   string `arg:"" optional:"" help:"Sign name. Omit to pick interactively."`
	System string `help:"Zodiac system (western or chinese)." default:"western"`

	// pick replaces the interactive picker in tests.
	pick func(system models.ZodiacSystem, suggested string) (string, error)
}

func (c *SignSelectCmd) Run(ctx *cli.Context) error {
	system, err := models.ParseSystem(c.System)
	if err != nil {
		return err
	}
	settings, err := ctx.Settings()
	if err != nil {
		return err
	}

	reconCtx, cancel := cli.Timeout(0)
	reading := ctx.Reconciler(settings).Get(reconCtx)
	cancel()
	weekStart := reading.WeekStartDate()

	name := c.Name
	if name == "" {
		pick := c.pick
		if pick == nil {
			pick = pickSign
		}
		if name, err = pick(system, models.CurrentSeason(reading.Time())); err != nil {
			return err
		}
	}
	sign, ok := models.LookupSign(system, name)
	if !ok {
		return fmt.Errorf("unknown %s sign: %s", system, name)
	}

	locked, err := ctx.Store.GetWeekSign(weekStart)
	if err != nil {
		return fmt.Errorf("failed to read week lock: %w", err)
	}
	if !rewards.SignChangeAllowed(locked.Sign, sign.Name) {
		return fmt.Errorf("sign %q is locked for the week of %s", locked.Sign, weekStart)
	}

	sel := models.Selection{Sign: sign.Name, System: system}
	if err := ctx.Store.SaveSelection(sel); err != nil {
		return fmt.Errorf("failed to save selection: %w", err)
	}
	if err := ctx.Store.SetWeekSign(weekStart, sel); err != nil {
		return fmt.Errorf("failed to lock week sign: %w", err)
	}

	ctx.Printf("%s %s selected for the week of %s\n", sign.Symbol, sign.Name, weekStart)
	return nil
}

func pickSign(system models.ZodiacSystem, suggested string) (string, error) {
	var opts []huh.Option[string]
	for _, s := range models.Signs(system) {
		label := s.Symbol + " " + s.Name
		if s.Dates != "" {
			label += "  (" + s.Dates + ")"
		}
		opts = append(opts, huh.NewOption(label, s.Name))
	}

	choice := suggested
	if _, ok := models.LookupSign(system, choice); !ok {
		choice = models.Signs(system)[0].Name
	}
	err := huh.NewSelect[string]().
		Title("Choose your sign for this week").
		Options(opts...).
		Value(&choice).
		Run()
	if err != nil {
		return "", err
	}
	return choice, nil
}

// SignShowCmd prints the current selection and this week's lock.
type SignShowCmd struct{}

func (c *SignShowCmd) Run(ctx *cli.Context) error {
	settings, err := ctx.Settings()
	if err != nil {
		return err
	}

	sel, err := ctx.Store.GetSelection()
	switch {
	case errors.Is(err, storage.ErrNoSelection):
		ctx.Println("No sign selected. Use 'horo sign select' to pick one.")
	case err != nil:
		return err
	default:
		symbol := ""
		if s, ok := models.LookupSign(sel.System, sel.Sign); ok {
			symbol = s.Symbol + " "
		}
		ctx.Printf("Selected: %s%s (%s)\n", symbol, sel.Sign, sel.System)
	}

	reconCtx, cancel := cli.Timeout(0)
	reading := ctx.Reconciler(settings).Get(reconCtx)
	cancel()
	weekStart := reading.WeekStartDate()

	locked, err := ctx.Store.GetWeekSign(weekStart)
	if err != nil {
		return fmt.Errorf("failed to read week lock: %w", err)
	}
	if locked.Sign == "" {
		ctx.Printf("Week of %s: not locked\n", weekStart)
	} else {
		ctx.Printf("Week of %s: locked to %s\n", weekStart, locked.Sign)
	}
	return nil
}

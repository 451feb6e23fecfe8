package models

import (
	"fmt"
	"strings"
	"time"
)

// ZodiacSystem selects which sign catalog a sign belongs to
type ZodiacSystem string

const (
	SystemWestern ZodiacSystem = "western"
	SystemChinese ZodiacSystem = "chinese"
)

// Sign is one entry of a zodiac catalog
type Sign struct {
	Name   string
	Symbol string
	Dates  string
}

var WesternSigns = []Sign{
	{Name: "aries", Symbol: "♈", Dates: "Mar 21 - Apr 19"},
	{Name: "taurus", Symbol: "♉", Dates: "Apr 20 - May 20"},
	{Name: "gemini", Symbol: "♊", Dates: "May 21 - Jun 20"},
	{Name: "cancer", Symbol: "♋", Dates: "Jun 21 - Jul 22"},
	{Name: "leo", Symbol: "♌", Dates: "Jul 23 - Aug 22"},
	{Name: "virgo", Symbol: "♍", Dates: "Aug 23 - Sep 22"},
	{Name: "libra", Symbol: "♎", Dates: "Sep 23 - Oct 22"},
	{Name: "scorpio", Symbol: "♏", Dates: "Oct 23 - Nov 21"},
	{Name: "sagittarius", Symbol: "♐", Dates: "Nov 22 - Dec 21"},
	{Name: "capricorn", Symbol: "♑", Dates: "Dec 22 - Jan 19"},
	{Name: "aquarius", Symbol: "♒", Dates: "Jan 20 - Feb 18"},
	{Name: "pisces", Symbol: "♓", Dates: "Feb 19 - Mar 20"},
}

var ChineseSigns = []Sign{
	{Name: "rat", Symbol: "🐀"},
	{Name: "ox", Symbol: "🐂"},
	{Name: "tiger", Symbol: "🐅"},
	{Name: "rabbit", Symbol: "🐇"},
	{Name: "dragon", Symbol: "🐉"},
	{Name: "snake", Symbol: "🐍"},
	{Name: "horse", Symbol: "🐎"},
	{Name: "goat", Symbol: "🐐"},
	{Name: "monkey", Symbol: "🐒"},
	{Name: "rooster", Symbol: "🐓"},
	{Name: "dog", Symbol: "🐕"},
	{Name: "pig", Symbol: "🐖"},
}

// Signs returns the catalog for a system.
func Signs(system ZodiacSystem) []Sign {
	if system == SystemChinese {
		return ChineseSigns
	}
	return WesternSigns
}

// ParseSystem validates a zodiac system name.
func ParseSystem(s string) (ZodiacSystem, error) {
	switch ZodiacSystem(strings.ToLower(strings.TrimSpace(s))) {
	case SystemWestern:
		return SystemWestern, nil
	case SystemChinese:
		return SystemChinese, nil
	default:
		return "", fmt.Errorf("invalid zodiac system: %s (expected western or chinese)", s)
	}
}

// LookupSign finds a sign by name within a system.
func LookupSign(system ZodiacSystem, name string) (Sign, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, s := range Signs(system) {
		if s.Name == name {
			return s, true
		}
	}
	return Sign{}, false
}

// CurrentSeason returns the western sign whose date range contains t.
func CurrentSeason(t time.Time) string {
	month, day := t.Month(), t.Day()
	switch {
	case (month == time.March && day >= 21) || (month == time.April && day <= 19):
		return "aries"
	case (month == time.April && day >= 20) || (month == time.May && day <= 20):
		return "taurus"
	case (month == time.May && day >= 21) || (month == time.June && day <= 20):
		return "gemini"
	case (month == time.June && day >= 21) || (month == time.July && day <= 22):
		return "cancer"
	case (month == time.July && day >= 23) || (month == time.August && day <= 22):
		return "leo"
	case (month == time.August && day >= 23) || (month == time.September && day <= 22):
		return "virgo"
	case (month == time.September && day >= 23) || (month == time.October && day <= 22):
		return "libra"
	case (month == time.October && day >= 23) || (month == time.November && day <= 21):
		return "scorpio"
	case (month == time.November && day >= 22) || (month == time.December && day <= 21):
		return "sagittarius"
	case (month == time.December && day >= 22) || (month == time.January && day <= 19):
		return "capricorn"
	case (month == time.January && day >= 20) || (month == time.February && day <= 18):
		return "aquarius"
	default:
		return "pisces"
	}
}

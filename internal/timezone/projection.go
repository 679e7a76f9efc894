package timezone

import (
	"errors"
	"fmt"
	"sync"
	"time"
)

var ErrInvalidTimezone = errors.New("unknown timezone")

const dateLayout = "2006-01-02"

// RuleProvider resolves timezone names to their offset rules. The default
// provider is backed by the IANA database; tests may substitute fixed or
// synthetic zones.
type RuleProvider interface {
	Rules(name string) (*time.Location, error)
}

// IANAProvider resolves names via the system/embedded tz database and caches
// loaded locations.
type IANAProvider struct {
	mu    sync.RWMutex
	cache map[string]*time.Location
}

func NewIANAProvider() *IANAProvider {
	return &IANAProvider{cache: make(map[string]*time.Location)}
}

func (p *IANAProvider) Rules(name string) (*time.Location, error) {
	p.mu.RLock()
	loc, ok := p.cache[name]
	p.mu.RUnlock()
	if ok {
		return loc, nil
	}

	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("%q: %w", name, ErrInvalidTimezone)
	}
	p.mu.Lock()
	p.cache[name] = loc
	p.mu.Unlock()
	return loc, nil
}

// LocalTime is a wall-clock representation of an instant in some timezone.
type LocalTime struct {
	Date   string `json:"date"`
	Hour   int    `json:"hour"`
	Minute int    `json:"minute"`
}

// DayRelation classifies an instant against a reference day's local
// [00:00, 24:00) window.
type DayRelation int

const (
	PreviousDay DayRelation = iota - 1
	SameDay
	NextDay
)

func (r DayRelation) String() string {
	switch r {
	case PreviousDay:
		return "previous-day"
	case SameDay:
		return "same-day"
	case NextDay:
		return "next-day"
	}
	return fmt.Sprintf("DayRelation(%d)", int(r))
}

// Engine projects baseline dates and hour offsets into absolute instants and
// instants into arbitrary target timezones. All methods are pure given the
// injected rule provider.
type Engine struct {
	rules RuleProvider
}

func NewEngine(rules RuleProvider) *Engine {
	return &Engine{rules: rules}
}

// ProjectBaselineHour returns the instant hourOffset civil hours after
// midnight of referenceDate in baselineTz. hourOffset may be negative or
// exceed 24 to reach adjacent days. Offsets landing in a DST gap or fold are
// normalized by the timezone rules (standard civil-time arithmetic).
func (e *Engine) ProjectBaselineHour(referenceDate string, baselineTz string, hourOffset int) (time.Time, error) {
	loc, err := e.rules.Rules(baselineTz)
	if err != nil {
		return time.Time{}, err
	}
	day, err := parseDate(referenceDate, loc)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(day.Year(), day.Month(), day.Day(), hourOffset, 0, 0, 0, loc), nil
}

// ToLocal converts an absolute instant to the target timezone's wall clock.
func (e *Engine) ToLocal(instant time.Time, targetTz string) (LocalTime, error) {
	loc, err := e.rules.Rules(targetTz)
	if err != nil {
		return LocalTime{}, err
	}
	local := instant.In(loc)
	return LocalTime{
		Date:   local.Format(dateLayout),
		Hour:   local.Hour(),
		Minute: local.Minute(),
	}, nil
}

// ClassifyAgainstDay reports whether instant falls before, inside or after
// the target-local [00:00, 24:00) window of referenceDate. The window is
// half-open: the start midnight is SameDay, the next midnight is NextDay.
func (e *Engine) ClassifyAgainstDay(instant time.Time, targetTz string, referenceDate string) (DayRelation, error) {
	loc, err := e.rules.Rules(targetTz)
	if err != nil {
		return SameDay, err
	}
	day, err := parseDate(referenceDate, loc)
	if err != nil {
		return SameDay, err
	}
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, loc)
	end := start.AddDate(0, 0, 1)
	switch {
	case instant.Before(start):
		return PreviousDay, nil
	case instant.Before(end):
		return SameDay, nil
	default:
		return NextDay, nil
	}
}

// DateChangedAt reports whether the target-local calendar date of instant
// differs from that of the instant one hour earlier. Used to place date
// rollover markers on hour rows.
func (e *Engine) DateChangedAt(instant time.Time, targetTz string) (bool, error) {
	loc, err := e.rules.Rules(targetTz)
	if err != nil {
		return false, err
	}
	cur := instant.In(loc).Format(dateLayout)
	prev := instant.Add(-time.Hour).In(loc).Format(dateLayout)
	return cur != prev, nil
}

// DayWindow returns the half-open [start, end) instants covering
// referenceDate's full local day in tz.
func (e *Engine) DayWindow(referenceDate string, tz string) (time.Time, time.Time, error) {
	loc, err := e.rules.Rules(tz)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	day, err := parseDate(referenceDate, loc)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, loc)
	return start, start.AddDate(0, 0, 1), nil
}

func parseDate(date string, loc *time.Location) (time.Time, error) {
	day, err := time.ParseInLocation(dateLayout, date, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse date %q: %w", date, err)
	}
	return day, nil
}

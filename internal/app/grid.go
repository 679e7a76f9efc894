package app

import (
	"context"
	"fmt"
	"time"

	"github.com/s1290025/worldtime-calendar/internal/layout"
	"github.com/s1290025/worldtime-calendar/internal/storage"
)

const (
	// HourHeight is the rendered height of one hour row in pixels.
	HourHeight = 64.0
	// MinEventHeight keeps very short events clickable.
	MinEventHeight = 20.0

	hoursPerDay = 24
	monthLayout = "2006-01"
)

// PlacedEvent is an event positioned for rendering: overlap column, cluster
// column count and pixel geometry relative to the day window's start.
type PlacedEvent struct {
	Event       storage.Event `json:"event"`
	Column      int           `json:"column"`
	ColumnCount int           `json:"columnCount"`
	Top         float64       `json:"top"`
	Height      float64       `json:"height"`
}

// DayGrid is the single-timezone day view model.
type DayGrid struct {
	Date     string        `json:"date"`
	Timezone string        `json:"timezone"`
	Events   []PlacedEvent `json:"events"`
}

// HourCell is one hour row of a zone column: the projected local wall clock
// for the baseline hour, plus a marker when the local date rolls over at this
// row.
type HourCell struct {
	HourOffset  int    `json:"hourOffset"`
	Label       string `json:"label"`
	LocalDate   string `json:"localDate"`
	DateChanged bool   `json:"dateChanged"`
	Relation    string `json:"relation"`
}

// ZoneColumn is one display timezone of the multi-zone view.
type ZoneColumn struct {
	Timezone string        `json:"timezone"`
	Offset   string        `json:"offset"`
	Hours    []HourCell    `json:"hours"`
	Events   []PlacedEvent `json:"events"`
}

// MultiZoneGrid is the multi-timezone day view model: the baseline day's 24
// hour rows projected into every display timezone.
type MultiZoneGrid struct {
	Date             string       `json:"date"`
	BaselineTimezone string       `json:"baselineTimezone"`
	Zones            []ZoneColumn `json:"zones"`
}

// MonthCell is one day cell of the month view.
type MonthCell struct {
	Date    string          `json:"date"`
	InMonth bool            `json:"inMonth"`
	Events  []storage.Event `json:"events"`
}

// MonthGrid is the month view model: Sunday-anchored weeks covering the month.
type MonthGrid struct {
	Month    string        `json:"month"`
	Timezone string        `json:"timezone"`
	Weeks    [][]MonthCell `json:"weeks"`
}

// BuildDayGrid composes the day view for one timezone: events overlapping the
// target-local day are clamped to its window, laid out into overlap columns
// and positioned in pixels.
func (a *App) BuildDayGrid(ctx context.Context, calendarID, date, tz string) (DayGrid, error) {
	windowStart, windowEnd, err := a.Timezone.DayWindow(date, tz)
	if err != nil {
		return DayGrid{}, err
	}
	events, err := a.Storage.GetEventsForRange(ctx, calendarID, windowStart, windowEnd)
	if err != nil {
		return DayGrid{}, err
	}
	placed, err := placeEvents(events, windowStart, windowEnd)
	if err != nil {
		return DayGrid{}, err
	}
	return DayGrid{Date: date, Timezone: tz, Events: placed}, nil
}

// BuildMultiZoneGrid composes the multi-timezone day view. Hour rows follow
// the baseline timezone; each zone column carries the projected local labels,
// date rollover markers and its own whole-day overlap layout, reused by every
// row so an event keeps one column across the day.
func (a *App) BuildMultiZoneGrid(
	ctx context.Context,
	calendarID, date, baselineTz string,
	zones []string,
) (MultiZoneGrid, error) {
	windowStart, windowEnd, err := a.Timezone.DayWindow(date, baselineTz)
	if err != nil {
		return MultiZoneGrid{}, err
	}
	events, err := a.Storage.GetEventsForRange(ctx, calendarID, windowStart, windowEnd)
	if err != nil {
		return MultiZoneGrid{}, err
	}

	grid := MultiZoneGrid{Date: date, BaselineTimezone: baselineTz}
	for _, tz := range zones {
		column := ZoneColumn{Timezone: tz}
		column.Offset, err = a.Timezone.OffsetAt(tz, windowStart)
		if err != nil {
			return MultiZoneGrid{}, err
		}

		for h := 0; h < hoursPerDay; h++ {
			instant, err := a.Timezone.ProjectBaselineHour(date, baselineTz, h)
			if err != nil {
				return MultiZoneGrid{}, err
			}
			local, err := a.Timezone.ToLocal(instant, tz)
			if err != nil {
				return MultiZoneGrid{}, err
			}
			changed, err := a.Timezone.DateChangedAt(instant, tz)
			if err != nil {
				return MultiZoneGrid{}, err
			}
			relation, err := a.Timezone.ClassifyAgainstDay(instant, tz, date)
			if err != nil {
				return MultiZoneGrid{}, err
			}
			column.Hours = append(column.Hours, HourCell{
				HourOffset:  h,
				Label:       fmt.Sprintf("%02d:%02d", local.Hour, local.Minute),
				LocalDate:   local.Date,
				DateChanged: changed,
				Relation:    relation.String(),
			})
		}

		column.Events, err = placeEvents(events, windowStart, windowEnd)
		if err != nil {
			return MultiZoneGrid{}, err
		}
		grid.Zones = append(grid.Zones, column)
	}
	return grid, nil
}

// BuildMonthGrid composes the month view: Sunday-anchored weeks with each
// cell carrying the events starting on that local date.
func (a *App) BuildMonthGrid(ctx context.Context, calendarID, month, tz string) (MonthGrid, error) {
	if _, err := time.Parse(monthLayout, month); err != nil {
		return MonthGrid{}, fmt.Errorf("failed to parse month %q: %w", month, err)
	}
	first, err := a.Timezone.ProjectBaselineHour(month+"-01", tz, 0)
	if err != nil {
		return MonthGrid{}, err
	}

	events, err := a.Storage.GetEventsForMonth(ctx, calendarID, first)
	if err != nil {
		return MonthGrid{}, err
	}
	byDate := make(map[string][]storage.Event)
	for _, e := range events {
		local, err := a.Timezone.ToLocal(e.StartTime, tz)
		if err != nil {
			return MonthGrid{}, err
		}
		byDate[local.Date] = append(byDate[local.Date], e)
	}

	gridStart := first.AddDate(0, 0, -int(first.Weekday()))
	last := first.AddDate(0, 1, -1)
	gridEnd := last.AddDate(0, 0, 6-int(last.Weekday()))

	grid := MonthGrid{Month: month, Timezone: tz}
	var week []MonthCell
	for d := gridStart; !d.After(gridEnd); d = d.AddDate(0, 0, 1) {
		dateStr := d.Format("2006-01-02")
		week = append(week, MonthCell{
			Date:    dateStr,
			InMonth: d.Month() == first.Month(),
			Events:  byDate[dateStr],
		})
		if len(week) == 7 {
			grid.Weeks = append(grid.Weeks, week)
			week = nil
		}
	}
	return grid, nil
}

// placeEvents clamps events to the half-open display window, resolves overlap
// columns and computes pixel geometry. Events are matched back to layout
// entries by ID; the store guarantees unique IDs.
func placeEvents(events []storage.Event, windowStart, windowEnd time.Time) ([]PlacedEvent, error) {
	byID := make(map[string]storage.Event, len(events))
	intervals := make([]layout.Interval, 0, len(events))
	for _, e := range events {
		start, end := clamp(e.StartTime, e.EndTime, windowStart, windowEnd)
		if !end.After(start) {
			continue
		}
		byID[e.ID] = e
		intervals = append(intervals, layout.Interval{ID: e.ID, Start: start, End: end})
	}

	entries, err := layout.Assign(intervals)
	if err != nil {
		return nil, err
	}

	placed := make([]PlacedEvent, 0, len(entries))
	for _, entry := range entries {
		top := entry.Start.Sub(windowStart).Minutes() / 60 * HourHeight
		height := entry.End.Sub(entry.Start).Minutes() / 60 * HourHeight
		if height < MinEventHeight {
			height = MinEventHeight
		}
		placed = append(placed, PlacedEvent{
			Event:       byID[entry.ID],
			Column:      entry.Column,
			ColumnCount: entry.ColumnCount,
			Top:         top,
			Height:      height,
		})
	}
	return placed, nil
}

func clamp(start, end, windowStart, windowEnd time.Time) (time.Time, time.Time) {
	if start.Before(windowStart) {
		start = windowStart
	}
	if end.After(windowEnd) {
		end = windowEnd
	}
	return start, end
}

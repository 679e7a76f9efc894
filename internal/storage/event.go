package storage

import (
	"time"
)

// Event is a scheduled entry of a shared calendar. StartTime and EndTime are
// absolute instants (stored UTC); Timezone records the wall-clock zone the
// event was authored in and is used only to round-trip the entry form. Color
// is the authoring participant's palette color.
type Event struct {
	ID          string    `json:"id" db:"id"`
	CalendarID  string    `json:"calendarId" db:"calendar_id"`
	Title       string    `json:"title" db:"title"`
	Description string    `json:"description" db:"description"`
	StartTime   time.Time `json:"startTime" db:"start_timestamp"`
	EndTime     time.Time `json:"endTime" db:"end_timestamp"`
	Timezone    string    `json:"timezone" db:"timezone"`
	Color       string    `json:"color" db:"color"`
	OwnerID     string    `json:"ownerId" db:"owner_id"`
	AllDay      bool      `json:"allDay" db:"all_day"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time `json:"updatedAt" db:"updated_at"`
}

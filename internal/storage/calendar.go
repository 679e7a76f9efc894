package storage

import (
	"time"
)

// Calendar is a shared calendar that participants join by URL.
type Calendar struct {
	ID        string    `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	URL       string    `json:"url" db:"url"`
	CreatedBy string    `json:"createdBy" db:"created_by"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

// Participant is a member of a shared calendar. Color is unique per calendar
// where the palette allows.
type Participant struct {
	ID         string    `json:"id" db:"id"`
	CalendarID string    `json:"calendarId" db:"calendar_id"`
	Name       string    `json:"name" db:"name"`
	Color      string    `json:"color" db:"color"`
	JoinedAt   time.Time `json:"joinedAt" db:"joined_at"`
	IsActive   bool      `json:"isActive" db:"is_active"`
}

package models

import "time"

// EventType classifies an event.
type EventType string

const (
	EventWorkshop   EventType = "WORKSHOP"
	EventConference EventType = "CONFERENCE"
	EventSeminar    EventType = "SEMINAR"
	EventLecture    EventType = "LECTURE"
	EventSocial     EventType = "SOCIAL"
	EventOther      EventType = "OTHER"
)

type Event struct {
	ID              int64     `json:"id"`
	Title           string    `json:"title"`
	Description     string    `json:"description,omitempty"`
	EventType       EventType `json:"event_type,omitempty"`
	Location        string    `json:"location,omitempty"`
	StartDate       time.Time `json:"start_date"`
	EndDate         time.Time `json:"end_date"`
	Capacity        int       `json:"capacity,omitempty"`
	Faculty         *int64    `json:"faculty,omitempty"`
	Creator         int64     `json:"creator,omitempty"`
	RegisteredCount int       `json:"registered_count,omitempty"`
	IsRegistered    bool      `json:"is_registered,omitempty"`
}

// EventInput is the body used to create or update an event.
type EventInput struct {
	Title       string     `json:"title,omitempty"`
	Description string     `json:"description,omitempty"`
	EventType   EventType  `json:"event_type,omitempty"`
	Location    string     `json:"location,omitempty"`
	StartDate   *time.Time `json:"start_date,omitempty"`
	EndDate     *time.Time `json:"end_date,omitempty"`
	Capacity    int        `json:"capacity,omitempty"`
	Faculty     *int64     `json:"faculty,omitempty"`
}

// EventFilter narrows GET /events/events/. Zero fields are not sent.
type EventFilter struct {
	Search      string
	EventType   EventType
	Upcoming    bool
	CreatedByMe bool
	Registered  bool
	Page        int
	PageSize    int
}

type Registration struct {
	ID       int64      `json:"id"`
	Event    int64      `json:"event"`
	User     int64      `json:"user"`
	Attended bool       `json:"attended"`
	Created  *time.Time `json:"registration_date,omitempty"`
}

type Feedback struct {
	ID      int64  `json:"id,omitempty"`
	Event   int64  `json:"event"`
	User    int64  `json:"user"`
	Comment string `json:"comment"`
}

type GalleryImage struct {
	ID      int64  `json:"id"`
	Event   int64  `json:"event"`
	Image   string `json:"image"`
	Caption string `json:"caption,omitempty"`
}

// EventStatistics is the attendance summary of one event.
type EventStatistics struct {
	TotalRegistrations int     `json:"total_registrations"`
	TotalAttended      int     `json:"total_attended"`
	AttendanceRate     float64 `json:"attendance_rate"`
}

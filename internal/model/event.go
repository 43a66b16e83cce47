package model

import "time"

// Event is a ticketed occurrence.  Events are seeded outside this
// application and are read-only here.
type Event struct {
	ID             uint64    // events.event_id
	Name           string    // events.event_name
	Date           time.Time // events.event_date (midnight UTC)
	AgeRestriction int       // events.age_restriction, minimum age in years
	Capacity       int       // events.capacity, maximum tickets sellable
}

// AvailableEvent is an upcoming event that still has tickets left.
type AvailableEvent struct {
	Event
	Sold      int
	Remaining int
}

package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/iliyamo/ticket-sales/internal/clock"
)

var (
	// ErrInvalidTicketCount is returned for a ticket count below one.
	ErrInvalidTicketCount = errors.New("ticket count must be at least 1")
	// ErrUnderAge is returned when the customer is younger than the event's
	// age restriction.
	ErrUnderAge = errors.New("customer does not meet the age requirement for this event")
	// ErrPastEvent is returned for events dated today or earlier.
	ErrPastEvent = errors.New("cannot purchase tickets for past events")
)

// InsufficientTicketsError reports how many tickets were left when a
// purchase asked for more.  Available is capacity minus sold and may be
// negative for an event that was oversold before the row lock existed.
type InsufficientTicketsError struct {
	Available int
}

func (e *InsufficientTicketsError) Error() string {
	return fmt.Sprintf("only %d tickets available for this event", e.Available)
}

// Age returns whole years between dob and today.  A birthday that has not
// happened yet this year does not count.
func Age(dob, today time.Time) int {
	age := today.Year() - dob.Year()
	if today.Month() < dob.Month() || (today.Month() == dob.Month() && today.Day() < dob.Day()) {
		age--
	}
	return age
}

// IsFutureEvent reports whether eventDate is strictly after today.  An
// event happening today is closed for sale.
func IsFutureEvent(eventDate, today time.Time) bool {
	return clock.DateOf(eventDate).After(clock.DateOf(today))
}

// Available is the number of tickets still sellable, not floored at zero.
func Available(capacity, sold int) int {
	return capacity - sold
}

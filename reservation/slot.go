// Package reservation holds the table availability rules: a fixed pool of
// tables, a fixed seating duration and a half-open overlap test.
package reservation

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"bhojon-backend/models"
)

const (
	MaxTables       = 20
	SeatingDuration = 2 * time.Hour
	DateLayout      = "2006-01-02"

	Free   = "Free"
	Booked = "Booked"
)

const endOfDay Clock = 24 * 60

var (
	ErrPastMidnight   = errors.New("reservation must end by 24:00")
	ErrEndBeforeStart = errors.New("end time must be after start time")
)

// Clock is a time of day in minutes since midnight. 24:00 is valid and
// only ever appears as an end time.
type Clock int

// ParseClock accepts H:MM or HH:MM.
func ParseClock(s string) (Clock, error) {
	hh, mm, ok := strings.Cut(strings.TrimSpace(s), ":")
	if !ok || len(mm) != 2 || len(hh) == 0 || len(hh) > 2 {
		return 0, fmt.Errorf("invalid time %q, expected HH:MM", s)
	}
	h, err := strconv.Atoi(hh)
	if err != nil {
		return 0, fmt.Errorf("invalid time %q, expected HH:MM", s)
	}
	m, err := strconv.Atoi(mm)
	if err != nil {
		return 0, fmt.Errorf("invalid time %q, expected HH:MM", s)
	}
	if h < 0 || m < 0 || m > 59 || h > 24 || (h == 24 && m != 0) {
		return 0, fmt.Errorf("invalid time %q, out of range", s)
	}
	return Clock(h*60 + m), nil
}

func (c Clock) Add(d time.Duration) Clock {
	return c + Clock(d/time.Minute)
}

// String renders zero-padded HH:MM. 24:00 stays as is; later times wrap
// into the next day.
func (c Clock) String() string {
	if c > endOfDay {
		c -= endOfDay
	}
	return fmt.Sprintf("%02d:%02d", int(c)/60, int(c)%60)
}

// ParseDate validates a YYYY-MM-DD date and returns it normalized.
func ParseDate(s string) (string, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return "", fmt.Errorf("invalid date %q, expected YYYY-MM-DD", s)
	}
	return t.Format(DateLayout), nil
}

// Slot is the half-open interval [Start, End).
type Slot struct {
	Start Clock
	End   Clock
}

// NewSlot builds the requested slot. An empty end means a standard seating.
func NewSlot(start, end string) (Slot, error) {
	s, err := ParseClock(start)
	if err != nil {
		return Slot{}, err
	}
	if s >= endOfDay {
		return Slot{}, ErrPastMidnight
	}
	slot := Slot{Start: s, End: s.Add(SeatingDuration)}
	if end != "" {
		e, err := ParseClock(end)
		if err != nil {
			return Slot{}, err
		}
		slot.End = e
	}
	if slot.End <= slot.Start {
		return Slot{}, ErrEndBeforeStart
	}
	if slot.End > endOfDay {
		return Slot{}, ErrPastMidnight
	}
	return slot, nil
}

// SeatingFrom is the standard seating starting at start, used to look up
// availability. Unlike NewSlot the end may run past midnight.
func SeatingFrom(start string) (Slot, error) {
	s, err := ParseClock(start)
	if err != nil {
		return Slot{}, err
	}
	if s >= endOfDay {
		return Slot{}, ErrPastMidnight
	}
	return Slot{Start: s, End: s.Add(SeatingDuration)}, nil
}

// Overlaps reports whether two half-open intervals intersect. Touching
// boundaries do not overlap.
func (s Slot) Overlaps(o Slot) bool {
	return s.Start < o.End && s.End > o.Start
}

func slotOf(r models.Reservation) (Slot, bool) {
	start, err := ParseClock(r.StartTime)
	if err != nil {
		return Slot{}, false
	}
	end, err := ParseClock(r.EndTime)
	if err != nil {
		end = start.Add(SeatingDuration)
	}
	return Slot{Start: start, End: end}, true
}

// TableStatuses walks tables 1..MaxTables and marks a table Booked when any
// active reservation on it overlaps the requested slot. existing must all
// belong to the requested date.
func TableStatuses(existing []models.Reservation, requested Slot) ([]models.TableStatus, bool) {
	tables := make([]models.TableStatus, 0, MaxTables)
	available := false
	for n := 1; n <= MaxTables; n++ {
		status := Free
		for _, r := range existing {
			if r.TableNo != n || r.Status == models.ReservationCancelled {
				continue
			}
			slot, ok := slotOf(r)
			if ok && requested.Overlaps(slot) {
				status = Booked
				break
			}
		}
		if status == Free {
			available = true
		}
		tables = append(tables, models.TableStatus{TableNo: n, Status: status})
	}
	return tables, available
}

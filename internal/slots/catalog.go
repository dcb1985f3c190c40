// Package slots holds the fixed catalog of one-hour booking windows. The
// catalog is deployment-time data: ids 1..N covering the service day, never
// mutated at runtime.
package slots

import (
	"errors"
	"fmt"
	"time"
)

var ErrUnknownSlot = errors.New("unknown slot id")

const (
	dayStartHour = 8  // first slot opens 08:00
	dayEndHour   = 23 // last slot closes 23:00
)

// Slot is one bookable window. Start and End are hours of the day.
type Slot struct {
	ID    int    `json:"id"`
	Start int    `json:"start_hour"`
	End   int    `json:"end_hour"`
	Label string `json:"label"`
}

var table []Slot

func init() {
	for h := dayStartHour; h < dayEndHour; h++ {
		table = append(table, Slot{
			ID:    h - dayStartHour + 1,
			Start: h,
			End:   h + 1,
			Label: fmt.Sprintf("%02d:00 - %02d:00", h, h+1),
		})
	}
}

// Count returns the number of slots in the catalog.
func Count() int { return len(table) }

// All returns a copy of the catalog in id order.
func All() []Slot {
	out := make([]Slot, len(table))
	copy(out, table)
	return out
}

// Get returns the slot with the given id.
func Get(id int) (Slot, error) {
	if id < 1 || id > len(table) {
		return Slot{}, ErrUnknownSlot
	}
	return table[id-1], nil
}

// Label returns the display label for a slot id.
func Label(id int) (string, error) {
	s, err := Get(id)
	if err != nil {
		return "", err
	}
	return s.Label, nil
}

// StartOn anchors the slot's start time on the given calendar day, in that
// day's location.
func StartOn(id int, day time.Time) (time.Time, error) {
	s, err := Get(id)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(day.Year(), day.Month(), day.Day(), s.Start, 0, 0, 0, day.Location()), nil
}

// EndOn anchors the slot's end time on the given calendar day.
func EndOn(id int, day time.Time) (time.Time, error) {
	s, err := Get(id)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(day.Year(), day.Month(), day.Day(), s.End, 0, 0, 0, day.Location()), nil
}

// At returns the slot whose [start,end) window contains t, if any.
func At(t time.Time) (Slot, bool) {
	h := t.Hour()
	if h < dayStartHour || h >= dayEndHour {
		return Slot{}, false
	}
	return table[h-dayStartHour], true
}

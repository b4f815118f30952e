// internal/app/system/weekgrid/weekgrid.go

// Package weekgrid lays schedules out on a Monday-start week.
//
// All dates are day-precision values at UTC midnight, the same form the
// schedules collection stores.
package weekgrid

import (
	"sort"
	"time"

	"github.com/dalemusser/ekskulhub/internal/domain/models"
)

// Week is the seven dates Monday..Sunday.
type Week [7]time.Time

var dayNames = [7]string{"Senin", "Selasa", "Rabu", "Kamis", "Jumat", "Sabtu", "Minggu"}

// Day is one column of the grid.
type Day struct {
	Date      time.Time         `json:"date"`
	Name      string            `json:"name"`
	Schedules []models.Schedule `json:"schedules"`
}

// DayOf truncates t to its calendar date at UTC midnight, using the date as
// seen in t's own location.
func DayOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// WeekOf returns the Monday-start week containing t.
func WeekOf(t time.Time) Week {
	day := DayOf(t)
	offset := (int(day.Weekday()) + 6) % 7 // Monday=0 .. Sunday=6
	monday := day.AddDate(0, 0, -offset)

	var w Week
	for i := range w {
		w[i] = monday.AddDate(0, 0, i)
	}
	return w
}

// Start is the Monday.
func (w Week) Start() time.Time { return w[0] }

// End is the first instant after Sunday, for half-open range queries.
func (w Week) End() time.Time { return w[6].AddDate(0, 0, 1) }

// Contains reports whether t's date falls in the week.
func (w Week) Contains(t time.Time) bool {
	d := DayOf(t)
	return !d.Before(w.Start()) && d.Before(w.End())
}

// Shift returns the same weekday n weeks later (n < 0 goes back).
func Shift(t time.Time, n int) time.Time {
	return DayOf(t).AddDate(0, 0, 7*n)
}

// Grid buckets schedules into the week's seven columns, each sorted by
// start time then title. Schedules outside the week are dropped.
func Grid(w Week, schedules []models.Schedule) [7]Day {
	var days [7]Day
	for i := range days {
		days[i] = Day{Date: w[i], Name: dayNames[i], Schedules: []models.Schedule{}}
	}
	for _, s := range schedules {
		d := DayOf(s.Date.UTC())
		if !w.Contains(d) {
			continue
		}
		idx := int(d.Sub(w.Start()).Hours() / 24)
		days[idx].Schedules = append(days[idx].Schedules, s)
	}
	for i := range days {
		sched := days[i].Schedules
		sort.SliceStable(sched, func(a, b int) bool {
			if sched[a].StartTime != sched[b].StartTime {
				return sched[a].StartTime < sched[b].StartTime
			}
			return sched[a].Title < sched[b].Title
		})
	}
	return days
}

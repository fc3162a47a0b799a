package models

import (
	"time"

	"github.com/dmitrijs2005/callkeeper/internal/strx"
)

// CallLogEntry is an immutable-once-written event. The mobile number is not
// required to exist in the master directory; logging is decoupled from
// directory membership.
type CallLogEntry struct {
	ID          string
	Date        time.Time
	MobileNo    string
	Project     string
	Town        string
	Requester   string
	RDCode      string
	RDName      string
	State       string
	Designation string
	Name        string
	Module      string
	Issue       string
	Solution    string
	SolvedOn    string
	CallOn      string
	Type        string
	CreatedBy   string
	CreatedAt   time.Time
}

// Normalize trims all string fields in place.
func (e *CallLogEntry) Normalize() {
	e.MobileNo = strx.Clean(e.MobileNo)
	e.Project = strx.Clean(e.Project)
	e.Town = strx.Clean(e.Town)
	e.Requester = strx.Clean(e.Requester)
	e.RDCode = strx.Clean(e.RDCode)
	e.RDName = strx.Clean(e.RDName)
	e.State = strx.Clean(e.State)
	e.Designation = strx.Clean(e.Designation)
	e.Name = strx.Clean(e.Name)
	e.Module = strx.Clean(e.Module)
	e.Issue = strx.Clean(e.Issue)
	e.Solution = strx.Clean(e.Solution)
	e.SolvedOn = strx.Clean(e.SolvedOn)
	e.CallOn = strx.Clean(e.CallOn)
	e.Type = strx.Clean(e.Type)
	e.CreatedBy = strx.Clean(e.CreatedBy)
}

// DateRange bounds a call-log report. Nil endpoints mean the range is open
// on that side; a nil pair means "all time".
type DateRange struct {
	Start *time.Time
	End   *time.Time
}

// Bounds returns the effective query endpoints. The end bound is pushed to the
// last nanosecond of its day, so a single-day range captures the whole day
// regardless of the time-of-day component stored on entries.
func (r DateRange) Bounds() (start, end *time.Time) {
	start = r.Start
	if r.End != nil {
		e := EndOfDay(*r.End)
		end = &e
	}
	return start, end
}

// EndOfDay returns the last nanosecond of t's calendar day, preserving
// the location.
func EndOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 23, 59, 59, int(time.Second-time.Nanosecond), t.Location())
}

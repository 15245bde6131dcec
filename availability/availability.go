package availability

import (
	"sort"
	"time"
)

const (
	DateLayout = "2006-01-02"

	// Alternative search scans this many days on either side of the target.
	altSearchDays   = 30
	maxAlternatives = 3
)

// TimeRange is a half-open interval [Start, End) in "HH:MM". An empty End
// means the booking holds the whole day.
type TimeRange struct {
	Start string
	End   string
}

// Snapshot is the calendar state the resolver decides against: owner blocks
// (date -> reason) and dates holding a pending or accepted booking.
type Snapshot struct {
	Blocked map[string]string
	Booked  map[string][]TimeRange
}

// Result reports availability for a single date. Alternatives is only set on
// rejection.
type Result struct {
	Available    bool     `json:"available"`
	Reason       string   `json:"reason,omitempty"`
	Alternatives []string `json:"alternatives,omitempty"`
}

// Overlaps reports whether [s,e) and [rs,re) intersect. "HH:MM" strings
// compare correctly as text.
func Overlaps(s, e, rs, re string) bool {
	return s < re && e > rs
}

// Check resolves availability for date with an optional time window. Rules in
// order, first failure wins: past date, owner block, booking conflict. On
// rejection the nearest open alternatives are attached.
func Check(snap *Snapshot, today time.Time, date, startTime, endTime string) Result {
	day, err := time.Parse(DateLayout, date)
	if err != nil {
		return Result{Reason: "invalid date"}
	}
	today = truncateDay(today)

	if day.Before(today) {
		return Result{Reason: "date is in the past"}
	}

	if reason, ok := snap.Blocked[date]; ok {
		if reason == "" {
			reason = "date is blocked"
		}
		return Result{Reason: reason, Alternatives: FindAlternatives(snap, today, day)}
	}

	if dateConflicts(snap, date, startTime, endTime) {
		return Result{Reason: "date is already booked", Alternatives: FindAlternatives(snap, today, day)}
	}

	return Result{Available: true}
}

func dateConflicts(snap *Snapshot, date, startTime, endTime string) bool {
	ranges, ok := snap.Booked[date]
	if !ok {
		return false
	}
	// No requested window: any existing booking on the date conflicts.
	if startTime == "" || endTime == "" {
		return len(ranges) > 0
	}
	for _, r := range ranges {
		if r.Start == "" || r.End == "" {
			return true
		}
		if Overlaps(r.Start, r.End, startTime, endTime) {
			return true
		}
	}
	return false
}

// FindAlternatives returns up to 3 open dates near target, closest first.
// Candidates run from -30 to +30 days around the target; ties in distance go
// to the earlier date. The snapshot must already cover the candidate range so
// the whole search stays a single bounded lookup.
func FindAlternatives(snap *Snapshot, today time.Time, target time.Time) []string {
	today = truncateDay(today)
	target = truncateDay(target)

	type candidate struct {
		date time.Time
		dist int
	}
	candidates := make([]candidate, 0, 2*altSearchDays)
	for offset := -altSearchDays; offset <= altSearchDays; offset++ {
		if offset == 0 {
			continue
		}
		d := target.AddDate(0, 0, offset)
		if d.Before(today) {
			continue
		}
		dist := offset
		if dist < 0 {
			dist = -dist
		}
		candidates = append(candidates, candidate{date: d, dist: dist})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].dist < candidates[j].dist
	})

	var out []string
	for _, c := range candidates {
		date := c.date.Format(DateLayout)
		if _, blocked := snap.Blocked[date]; blocked {
			continue
		}
		if ranges := snap.Booked[date]; len(ranges) > 0 {
			continue
		}
		out = append(out, date)
		if len(out) == maxAlternatives {
			break
		}
	}
	return out
}

// SearchRange is the date span a snapshot must cover for Check on target,
// including the alternative scan on both sides.
func SearchRange(target time.Time) (from, to string) {
	target = truncateDay(target)
	return target.AddDate(0, 0, -altSearchDays).Format(DateLayout),
		target.AddDate(0, 0, altSearchDays).Format(DateLayout)
}

func truncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

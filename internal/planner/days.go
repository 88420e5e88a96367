package planner

import (
	"sort"
	"time"

	"github.com/Izazzubayer/Pathly/internal/models"
)

// AssignAnchorsToDays distributes anchors over days 1..dayCount. Time-locked
// anchors go to the day matching their lock date; locks outside the trip
// window are returned as dropped. The rest are sorted by priority (stable)
// and dealt round-robin.
func AssignAnchorsToDays(anchors []models.Anchor, dayCount int, startDate time.Time) (map[int][]models.Anchor, []models.Anchor) {
	assignments := make(map[int][]models.Anchor, dayCount)
	for d := 1; d <= dayCount; d++ {
		assignments[d] = nil
	}
	if dayCount < 1 {
		return assignments, nil
	}

	var dropped []models.Anchor
	var unlocked []models.Anchor

	for _, a := range anchors {
		if a.TimeLock == nil || a.TimeLock.Date.IsZero() {
			unlocked = append(unlocked, a)
			continue
		}
		dayNumber := daysBetween(startDate, a.TimeLock.Date) + 1
		if dayNumber < 1 || dayNumber > dayCount {
			dropped = append(dropped, a)
			continue
		}
		assignments[dayNumber] = append(assignments[dayNumber], a)
	}

	sort.SliceStable(unlocked, func(i, j int) bool {
		return unlocked[i].Priority < unlocked[j].Priority
	})
	for i, a := range unlocked {
		dayNumber := i%dayCount + 1
		assignments[dayNumber] = append(assignments[dayNumber], a)
	}

	return assignments, dropped
}

// daysBetween counts calendar days from a to b, ignoring time of day
func daysBetween(a, b time.Time) int {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	from := time.Date(ay, am, ad, 0, 0, 0, 0, time.UTC)
	to := time.Date(by, bm, bd, 0, 0, 0, 0, time.UTC)
	return int(to.Sub(from).Hours() / 24)
}

// FillDaysWithOptional builds each day's place list: its anchors followed by
// the optional places sharing a cluster with any of them. Days are visited in
// ascending order and an optional place is claimed by the first day that
// reaches it, so no place is scheduled twice.
func FillDaysWithOptional(assignments map[int][]models.Anchor, optional []models.Place, clusters []models.Cluster) map[int][]models.Place {
	optionalIDs := make(map[string]bool, len(optional))
	for _, p := range optional {
		optionalIDs[p.ID] = true
	}

	dayNumbers := make([]int, 0, len(assignments))
	for d := range assignments {
		dayNumbers = append(dayNumbers, d)
	}
	sort.Ints(dayNumbers)

	claimed := make(map[string]bool)
	filled := make(map[int][]models.Place, len(assignments))

	for _, d := range dayNumbers {
		anchors := assignments[d]
		places := make([]models.Place, 0, len(anchors))
		anchorIDs := make(map[string]bool, len(anchors))
		for _, a := range anchors {
			places = append(places, a.Place)
			anchorIDs[a.ID] = true
		}

		for _, c := range clusters {
			if !containsAny(c, anchorIDs) {
				continue
			}
			for _, p := range c.Places {
				if !optionalIDs[p.ID] || anchorIDs[p.ID] || claimed[p.ID] {
					continue
				}
				claimed[p.ID] = true
				places = append(places, p)
			}
		}

		filled[d] = places
	}

	return filled
}

func containsAny(c models.Cluster, ids map[string]bool) bool {
	for _, p := range c.Places {
		if ids[p.ID] {
			return true
		}
	}
	return false
}

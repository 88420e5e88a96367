package planner

import (
	"github.com/samber/lo"

	"github.com/Izazzubayer/Pathly/internal/models"
	"github.com/Izazzubayer/Pathly/internal/routing"
)

// ReorderPlace moves the stop at index from to index to (both 0-based) within
// a day, keeping the user's order and re-timing the day.
func (o *Optimizer) ReorderPlace(it *models.Itinerary, hotel models.Coordinates, dayNumber, from, to int) error {
	day := it.Day(dayNumber)
	if day == nil {
		return invalidf("day %d does not exist", dayNumber)
	}
	n := len(day.Places)
	if from < 0 || from >= n || to < 0 || to >= n {
		return invalidf("reorder %d -> %d out of range for %d stops", from, to, n)
	}

	stops := stopsOf(day.Places)
	moved := stops[from]
	stops = append(stops[:from], stops[from+1:]...)
	stops = append(stops[:to], append([]stop{moved}, stops[to:]...)...)

	*day = o.scheduleDay(dayNumber, day.Date, stops, hotel, it.UserContext)
	RecomputeTotals(it)

	o.log.Info("stop reordered", "id", it.ID, "day", dayNumber, "from", from, "to", to)
	return nil
}

// RemovePlace drops a stop from a day and re-times the rest
func (o *Optimizer) RemovePlace(it *models.Itinerary, hotel models.Coordinates, dayNumber int, placeID string) error {
	day := it.Day(dayNumber)
	if day == nil {
		return invalidf("day %d does not exist", dayNumber)
	}
	if !lo.ContainsBy(day.Places, func(ip models.ItineraryPlace) bool { return ip.Place.ID == placeID }) {
		return invalidf("place %q is not scheduled on day %d", placeID, dayNumber)
	}

	kept := lo.Reject(day.Places, func(ip models.ItineraryPlace, _ int) bool { return ip.Place.ID == placeID })
	*day = o.scheduleDay(dayNumber, day.Date, stopsOf(kept), hotel, it.UserContext)
	RecomputeTotals(it)

	o.log.Info("stop removed", "id", it.ID, "day", dayNumber, "place", placeID)
	return nil
}

// MovePlace moves a stop to another day. The source day keeps its order; the
// target day is re-sequenced with the newcomer.
func (o *Optimizer) MovePlace(it *models.Itinerary, hotel models.Coordinates, fromDay int, placeID string, toDay int) error {
	src := it.Day(fromDay)
	if src == nil {
		return invalidf("day %d does not exist", fromDay)
	}
	dst := it.Day(toDay)
	if dst == nil {
		return invalidf("day %d does not exist", toDay)
	}

	moving, idx, found := lo.FindIndexOf(src.Places, func(ip models.ItineraryPlace) bool { return ip.Place.ID == placeID })
	if !found {
		return invalidf("place %q is not scheduled on day %d", placeID, fromDay)
	}
	if fromDay == toDay {
		return nil
	}

	remaining := append(append([]models.ItineraryPlace(nil), src.Places[:idx]...), src.Places[idx+1:]...)
	*src = o.scheduleDay(fromDay, src.Date, stopsOf(remaining), hotel, it.UserContext)

	anchorIDs := make(map[string]bool, len(dst.Places)+1)
	places := make([]models.Place, 0, len(dst.Places)+1)
	for _, ip := range append(dst.Places, moving) {
		places = append(places, ip.Place)
		anchorIDs[ip.Place.ID] = ip.IsAnchor
	}
	*dst = o.scheduleDay(toDay, dst.Date, toStops(routing.Sequence(places, hotel), anchorIDs), hotel, it.UserContext)

	RecomputeTotals(it)

	o.log.Info("stop moved", "id", it.ID, "place", placeID, "from_day", fromDay, "to_day", toDay)
	return nil
}

// ScheduledPlaceIDs returns the ids of every place on any day
func ScheduledPlaceIDs(it *models.Itinerary) map[string]bool {
	ids := make(map[string]bool)
	for _, d := range it.Days {
		for _, ip := range d.Places {
			ids[ip.Place.ID] = true
		}
	}
	return ids
}

package export

import (
	"fmt"
	"io"

	"github.com/paulmach/orb/geojson"

	"github.com/Izazzubayer/Pathly/internal/geo"
	"github.com/Izazzubayer/Pathly/internal/models"
)

// FeatureCollection maps an itinerary to GeoJSON: one Point per stop, the
// hotel as a Point when known, and one LineString per leg. Legs use road
// geometry when it has been fetched, otherwise a straight line.
func FeatureCollection(it *models.Itinerary, hotel models.Coordinates) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()

	if !hotel.IsZero() {
		f := geojson.NewFeature(geo.Point(hotel))
		f.Properties["kind"] = "hotel"
		f.Properties["name"] = it.TripDetails.HotelName
		fc.Append(f)
	}

	for _, day := range it.Days {
		for _, ip := range day.Places {
			f := geojson.NewFeature(geo.Point(ip.Place.Location))
			f.ID = ip.Place.ID
			f.Properties["kind"] = "stop"
			f.Properties["name"] = ip.Place.Name
			f.Properties["day"] = day.DayNumber
			f.Properties["order"] = ip.OrderInDay
			f.Properties["activity_type"] = string(ip.Place.ActivityType)
			f.Properties["is_anchor"] = ip.IsAnchor
			f.Properties["arrival_time"] = ip.ArrivalTime
			f.Properties["departure_time"] = ip.DepartureTime
			fc.Append(f)
		}

		for i, seg := range day.Routes {
			line := seg.Geometry
			if len(line) < 2 {
				line = geo.LineString(seg.From.Place.Location, seg.To.Place.Location)
			}
			f := geojson.NewFeature(line)
			f.ID = fmt.Sprintf("day%d-leg%d", day.DayNumber, i+1)
			f.Properties["kind"] = "leg"
			f.Properties["day"] = day.DayNumber
			f.Properties["from"] = seg.From.Place.ID
			f.Properties["to"] = seg.To.Place.ID
			f.Properties["distance"] = seg.Distance
			f.Properties["duration"] = seg.Duration
			f.Properties["mode"] = string(seg.Mode)
			if seg.RoadDistance > 0 {
				f.Properties["road_distance"] = seg.RoadDistance
				f.Properties["road_duration"] = seg.RoadDuration
			}
			fc.Append(f)
		}
	}

	return fc
}

// GeoJSON writes FeatureCollection(it, hotel)
func GeoJSON(w io.Writer, it *models.Itinerary, hotel models.Coordinates) error {
	data, err := FeatureCollection(it, hotel).MarshalJSON()
	if err != nil {
		return fmt.Errorf("failed to encode geojson: %w", err)
	}
	_, err = w.Write(data)
	return err
}

// Package routing orders a day's stops with a nearest-neighbor construction
// followed by 2-opt improvement.
package routing

import (
	"github.com/Izazzubayer/Pathly/internal/geo"
	"github.com/Izazzubayer/Pathly/internal/models"
)

// improvementEpsilon is the minimum gain in meters for a 2-opt move to count
const improvementEpsilon = 1e-7

// Sequence returns a visiting order for places starting from start. The
// result is always a permutation of the input; the input slice is not modified.
func Sequence(places []models.Place, start models.Coordinates) []models.Place {
	if len(places) <= 1 {
		return append([]models.Place(nil), places...)
	}

	route := NearestNeighbor(places, start)
	return TwoOpt(route, start)
}

// NearestNeighbor builds a route by repeatedly visiting the closest unvisited place
func NearestNeighbor(places []models.Place, start models.Coordinates) []models.Place {
	route := make([]models.Place, 0, len(places))
	visited := make([]bool, len(places))
	current := start

	for len(route) < len(places) {
		nearest := -1
		minDist := -1.0
		for i, p := range places {
			if visited[i] {
				continue
			}
			d := geo.Distance(current, p.Location)
			if minDist < 0 || d < minDist {
				minDist = d
				nearest = i
			}
		}

		visited[nearest] = true
		route = append(route, places[nearest])
		current = places[nearest].Location
	}

	return route
}

// TwoOpt improves a route by reversing sub-segments while doing so shortens
// the closed tour start -> route... -> start. It stops at a local optimum;
// every accepted move strictly shortens the tour, so it always terminates.
func TwoOpt(route []models.Place, start models.Coordinates) []models.Place {
	stops := append([]models.Place(nil), route...)
	n := len(stops)
	if n < 2 {
		return stops
	}

	at := func(idx int) models.Coordinates {
		if idx < 0 || idx >= n {
			return start
		}
		return stops[idx].Location
	}

	improved := true
	for improved {
		improved = false
		for i := 0; i < n-1; i++ {
			for j := i + 1; j < n; j++ {
				before := at(i - 1)
				after := at(j + 1)

				current := geo.Distance(before, at(i)) + geo.Distance(at(j), after)
				reversed := geo.Distance(before, at(j)) + geo.Distance(at(i), after)

				if reversed < current-improvementEpsilon {
					reverse(stops, i, j)
					improved = true
				}
			}
		}
	}

	return stops
}

func reverse(stops []models.Place, i, j int) {
	for left, right := i, j; left < right; left, right = left+1, right-1 {
		stops[left], stops[right] = stops[right], stops[left]
	}
}

package export

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/Izazzubayer/Pathly/internal/models"
)

var rule = strings.Repeat("-", 50)

// Text writes a human-readable day-by-day itinerary
func Text(w io.Writer, it *models.Itinerary) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "%s Itinerary\n", it.TripDetails.Destination)
	fmt.Fprintf(bw, "Generated on %s\n\n", it.CreatedAt.Format("January 2, 2006"))
	fmt.Fprintf(bw, "Total Distance: %d km\n", int(math.Round(it.TotalDistance/1000)))
	fmt.Fprintf(bw, "Total Duration: %d hours\n", int(math.Round(float64(it.TotalDuration)/60)))
	fmt.Fprintf(bw, "Optimization Score: %d/100\n\n", it.OptimizationScore)
	fmt.Fprintf(bw, "%s\n\n", rule)

	for _, day := range it.Days {
		fmt.Fprintf(bw, "Day %d - %s\n", day.DayNumber, day.Date.Format("Monday, January 2"))
		fmt.Fprintf(bw, "%s\n\n", rule)

		for i, ip := range day.Places {
			fmt.Fprintf(bw, "%d. %s\n", i+1, ip.Place.Name)
			fmt.Fprintf(bw, "   Time: %s - %s (%d min)\n", ip.ArrivalTime, ip.DepartureTime, ip.Duration)
			if ip.IsAnchor {
				fmt.Fprintf(bw, "   Anchor (Must Visit)\n")
			}
			fmt.Fprintf(bw, "   Type: %s\n", ip.Place.ActivityType)
			if ip.Reason != "" {
				fmt.Fprintf(bw, "   Why: %s\n", ip.Reason)
			}
			if ip.DistanceFromPrevious > 0 {
				fmt.Fprintf(bw, "   %.1f km from previous\n", math.Round(ip.DistanceFromPrevious/100)/10)
			}
			fmt.Fprintln(bw)
		}
		fmt.Fprintln(bw)
	}

	return bw.Flush()
}

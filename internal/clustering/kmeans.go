// Package clustering groups places geographically so optional places can
// follow the anchors they sit near.
package clustering

import (
	"math/rand"
	"time"

	"github.com/Izazzubayer/Pathly/internal/geo"
	"github.com/Izazzubayer/Pathly/internal/models"
)

const (
	// MaxIterations caps the refinement loop
	MaxIterations = 100
	// ConvergenceMeters is how far every centroid may still move once converged
	ConvergenceMeters = 100.0
)

// Cluster partitions places into at most k groups using k-means over
// haversine distance. rng drives centroid seeding; a nil rng is seeded from
// the clock. Every input place ends up in exactly one returned cluster.
func Cluster(places []models.Place, k int, rng *rand.Rand) []models.Cluster {
	if len(places) == 0 {
		return []models.Cluster{}
	}

	if len(places) <= k {
		clusters := make([]models.Cluster, len(places))
		for i, p := range places {
			clusters[i] = models.Cluster{
				ID:       i,
				Centroid: p.Location,
				Places:   []models.Place{p},
				Radius:   0,
			}
		}
		return clusters
	}

	if k < 1 {
		k = 1
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	centroids := seedCentroids(places, k, rng)
	assignments := make([]int, len(places))

	for iteration := 0; iteration < MaxIterations; iteration++ {
		assign(places, centroids, assignments)

		next := updateCentroids(places, assignments, k, rng)
		converged := centroidsConverged(centroids, next)
		centroids = next
		if converged {
			break
		}
	}

	assign(places, centroids, assignments)
	return buildClusters(places, assignments, centroids)
}

// seedCentroids picks k distinct input places as starting centroids
func seedCentroids(places []models.Place, k int, rng *rand.Rand) []models.Coordinates {
	perm := rng.Perm(len(places))
	centroids := make([]models.Coordinates, k)
	for i := 0; i < k; i++ {
		centroids[i] = places[perm[i]].Location
	}
	return centroids
}

func assign(places []models.Place, centroids []models.Coordinates, assignments []int) {
	for i, p := range places {
		assignments[i] = nearestCentroid(p.Location, centroids)
	}
}

func nearestCentroid(point models.Coordinates, centroids []models.Coordinates) int {
	nearest := 0
	minDist := -1.0
	for i, c := range centroids {
		d := geo.Distance(point, c)
		if minDist < 0 || d < minDist {
			minDist = d
			nearest = i
		}
	}
	return nearest
}

// updateCentroids moves each centroid to the mean of its members. A centroid
// with no members is re-seeded from a random input place.
func updateCentroids(places []models.Place, assignments []int, k int, rng *rand.Rand) []models.Coordinates {
	sums := make([]models.Coordinates, k)
	counts := make([]int, k)
	for i, p := range places {
		c := assignments[i]
		sums[c].Lat += p.Location.Lat
		sums[c].Lng += p.Location.Lng
		counts[c]++
	}

	centroids := make([]models.Coordinates, k)
	for c := 0; c < k; c++ {
		if counts[c] == 0 {
			centroids[c] = places[rng.Intn(len(places))].Location
			continue
		}
		centroids[c] = models.Coordinates{
			Lat: sums[c].Lat / float64(counts[c]),
			Lng: sums[c].Lng / float64(counts[c]),
		}
	}
	return centroids
}

func centroidsConverged(prev, next []models.Coordinates) bool {
	if len(prev) != len(next) {
		return false
	}
	for i := range prev {
		if geo.Distance(prev[i], next[i]) >= ConvergenceMeters {
			return false
		}
	}
	return true
}

func buildClusters(places []models.Place, assignments []int, centroids []models.Coordinates) []models.Cluster {
	members := make([][]models.Place, len(centroids))
	for i, p := range places {
		members[assignments[i]] = append(members[assignments[i]], p)
	}

	clusters := make([]models.Cluster, 0, len(centroids))
	for id, group := range members {
		if len(group) == 0 {
			continue
		}

		radius := 0.0
		for _, p := range group {
			if d := geo.Distance(p.Location, centroids[id]); d > radius {
				radius = d
			}
		}

		clusters = append(clusters, models.Cluster{
			ID:       id,
			Centroid: centroids[id],
			Places:   group,
			Radius:   radius,
		})
	}
	return clusters
}

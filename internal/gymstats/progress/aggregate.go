package progress

import (
	"math"
	"sort"
	"time"

	"github.com/2beens/gymstats/internal/gymstats/workout"
)

// ProgressPoint is the summed volume of one exercise on one calendar day (UTC).
type ProgressPoint struct {
	Date   time.Time `json:"date"`
	Volume float64   `json:"volume"`
}

// DayStats describes how an exercise was trained on one calendar day (UTC).
type DayStats struct {
	Date      time.Time `json:"date"`
	Sets      int       `json:"sets"`
	Reps      int       `json:"reps"`
	AvgWeight float64   `json:"avgWeight"`
	MaxWeight float64   `json:"maxWeight"`
	Volume    float64   `json:"volume"`
}

// day truncates t to its UTC calendar date.
func day(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Progress sums the volume of all entries matching the query, per session date.
// The series is sparse and sorted ascending by date. An unknown exercise gives an empty series.
func Progress(sessions []*workout.Session, query string) []ProgressPoint {
	points := make([]ProgressPoint, 0)

	nq := workout.Normalize(query)
	if nq == "" {
		return points
	}

	day2volume := make(map[time.Time]float64)
	for _, s := range sessions {
		for _, e := range s.Exercises {
			if workout.Normalize(e.Name) != nq {
				continue
			}
			day2volume[day(s.Date)] += workout.ExerciseVolume(e.Reps, e.Weights)
		}
	}

	for d, volume := range day2volume {
		points = append(points, ProgressPoint{
			Date:   d,
			Volume: volume,
		})
	}

	sort.Slice(points, func(i, j int) bool {
		return points[i].Date.Before(points[j].Date)
	})

	return points
}

// ExerciseCatalog returns one display name per distinct exercise, keeping the first
// seen form, in first seen order.
func ExerciseCatalog(sessions []*workout.Session) []string {
	catalog := make([]string, 0)
	seen := make(map[string]bool)
	for _, s := range sessions {
		for _, e := range s.Exercises {
			n := workout.Normalize(e.Name)
			if n == "" || seen[n] {
				continue
			}
			seen[n] = true
			catalog = append(catalog, e.Name)
		}
	}
	return catalog
}

// DailyStats aggregates the sets of the queried exercise per calendar day.
// AvgWeight is averaged over sets, rounded to 2 decimals.
func DailyStats(sessions []*workout.Session, query string) []DayStats {
	stats := make([]DayStats, 0)

	nq := workout.Normalize(query)
	if nq == "" {
		return stats
	}

	day2stats := make(map[time.Time]*DayStats)
	day2weightSum := make(map[time.Time]float64)
	for _, s := range sessions {
		d := day(s.Date)
		for _, e := range s.Exercises {
			if workout.Normalize(e.Name) != nq {
				continue
			}

			ds, ok := day2stats[d]
			if !ok {
				ds = &DayStats{Date: d}
				day2stats[d] = ds
			}

			ds.Volume += workout.ExerciseVolume(e.Reps, e.Weights)
			for i, w := range e.Weights {
				ds.Sets++
				day2weightSum[d] += w
				if w > ds.MaxWeight {
					ds.MaxWeight = w
				}
				if i < len(e.Reps) {
					ds.Reps += e.Reps[i]
				}
			}
		}
	}

	for d, ds := range day2stats {
		if ds.Sets > 0 {
			ds.AvgWeight = math.Round(day2weightSum[d]/float64(ds.Sets)*100) / 100
		}
		stats = append(stats, *ds)
	}

	sort.Slice(stats, func(i, j int) bool {
		return stats[i].Date.Before(stats[j].Date)
	})

	return stats
}

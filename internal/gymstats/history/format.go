// Package history renders workout sessions as plain text, the form in which
// they are handed to the coach.
package history

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/2beens/gymstats/internal/gymstats/workout"
)

const (
	DefaultLimit     = 20
	NoWorkoutsYet    = "no workouts logged yet"
	dateLayout       = "Mon, 02 Jan 2006"
	weightMissing    = "0"
	setSeparator     = ", "
	sessionSeparator = "\n\n"
)

// FormatRecentHistory renders at most limit sessions, newest first.
// A limit <= 0 means DefaultLimit. The input slice is not reordered.
func FormatRecentHistory(sessions []*workout.Session, limit int) string {
	if len(sessions) == 0 {
		return NoWorkoutsYet
	}
	if limit <= 0 {
		limit = DefaultLimit
	}

	sorted := make([]*workout.Session, len(sessions))
	copy(sorted, sessions)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.After(sorted[j].Date)
	})

	if len(sorted) > limit {
		sorted = sorted[:limit]
	}

	rendered := make([]string, 0, len(sorted))
	for _, s := range sorted {
		rendered = append(rendered, FormatSession(s))
	}
	return strings.Join(rendered, sessionSeparator)
}

// FormatSession renders a date header followed by one line per exercise:
//
//	Sat, 20 Jul 2024 (push day)
//	- bench press: 10 reps @ 50kg, 8 reps @ 60kg
func FormatSession(s *workout.Session) string {
	var sb strings.Builder

	sb.WriteString(s.Date.UTC().Format(dateLayout))
	if s.Label != "" {
		sb.WriteString(" (")
		sb.WriteString(s.Label)
		sb.WriteString(")")
	}

	for _, e := range s.Exercises {
		sb.WriteString("\n- ")
		sb.WriteString(formatExercise(e))
	}

	return sb.String()
}

func formatExercise(e workout.Exercise) string {
	sets := make([]string, 0, len(e.Reps))
	for i, reps := range e.Reps {
		weight := weightMissing
		if i < len(e.Weights) {
			weight = strconv.FormatFloat(e.Weights[i], 'f', -1, 64)
		}
		sets = append(sets, fmt.Sprintf("%d reps @ %skg", reps, weight))
	}
	return e.Name + ": " + strings.Join(sets, setSeparator)
}

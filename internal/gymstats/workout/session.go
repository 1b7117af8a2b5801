package workout

import (
	"encoding/json"
	"slices"
	"time"
)

// State of a workout session. A session starts Open and becomes Logged
// once the user finishes (logs) it.
type State string

const (
	StateOpen   State = "open"
	StateLogged State = "logged"
)

func (s State) String() string {
	return string(s)
}

func (s State) IsValid() bool {
	switch s {
	case StateOpen, StateLogged:
		return true
	default:
		return false
	}
}

// Exercise is one named movement within a session, with per-set reps and weights.
// Exercises are embedded in their session and never shared between sessions.
type Exercise struct {
	Name    string
	Sets    int
	Reps    []int
	Weights []float64

	// derived from Reps and Weights, see recompute
	volume float64
}

// NewExercise builds an exercise entry and derives its volume. It does not validate,
// stores use it to rebuild entries from persisted documents.
func NewExercise(name string, sets int, reps []int, weights []float64) Exercise {
	e := Exercise{
		Name:    name,
		Sets:    sets,
		Reps:    reps,
		Weights: weights,
	}
	e.recompute()
	return e
}

func (e *Exercise) recompute() {
	e.volume = ExerciseVolume(e.Reps, e.Weights)
}

func (e Exercise) Volume() float64 {
	return e.volume
}

type exerciseJSON struct {
	Name    string    `json:"name"`
	Sets    int       `json:"sets"`
	Reps    []int     `json:"reps"`
	Weights []float64 `json:"weights"`
	Volume  float64   `json:"volume"`
}

func (e Exercise) MarshalJSON() ([]byte, error) {
	return json.Marshal(exerciseJSON{
		Name:    e.Name,
		Sets:    e.Sets,
		Reps:    e.Reps,
		Weights: e.Weights,
		Volume:  e.volume,
	})
}

// UnmarshalJSON ignores any persisted volume and derives it again.
func (e *Exercise) UnmarshalJSON(data []byte) error {
	var ej exerciseJSON
	if err := json.Unmarshal(data, &ej); err != nil {
		return err
	}
	*e = NewExercise(ej.Name, ej.Sets, ej.Reps, ej.Weights)
	return nil
}

// Session is one workout occasion owned by a single user.
type Session struct {
	ID        string     `json:"id"`
	UserID    string     `json:"userId"`
	Label     string     `json:"label,omitempty"`
	Date      time.Time  `json:"date"`
	State     State      `json:"state"`
	Exercises []Exercise `json:"exercises"`
	CreatedAt time.Time  `json:"createdAt"`
	LoggedAt  *time.Time `json:"loggedAt,omitempty"`

	totalVolume float64
}

// TotalVolume is the sum of the volumes of all contained exercises.
func (s *Session) TotalVolume() float64 {
	return s.totalVolume
}

// RecomputeVolume derives every exercise volume and the session total from scratch.
func (s *Session) RecomputeVolume() {
	for i := range s.Exercises {
		s.Exercises[i].recompute()
	}
	s.totalVolume = SessionVolume(s.Exercises)
}

func (s *Session) IsLogged() bool {
	return s.State == StateLogged
}

// Clone returns a deep copy of the session.
func (s *Session) Clone() *Session {
	c := *s
	c.Exercises = make([]Exercise, len(s.Exercises))
	for i, e := range s.Exercises {
		c.Exercises[i] = e
		c.Exercises[i].Reps = slices.Clone(e.Reps)
		c.Exercises[i].Weights = slices.Clone(e.Weights)
	}
	if s.LoggedAt != nil {
		loggedAt := *s.LoggedAt
		c.LoggedAt = &loggedAt
	}
	return &c
}

// sessionAlias drops the JSON methods of Session, to avoid recursion.
type sessionAlias Session

func (s Session) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		sessionAlias
		TotalVolume float64 `json:"totalVolume"`
	}{
		sessionAlias: sessionAlias(s),
		TotalVolume:  s.totalVolume,
	})
}

func (s *Session) UnmarshalJSON(data []byte) error {
	var alias sessionAlias
	if err := json.Unmarshal(data, &alias); err != nil {
		return err
	}
	*s = Session(alias)
	if s.Exercises == nil {
		s.Exercises = make([]Exercise, 0)
	}
	s.RecomputeVolume()
	return nil
}

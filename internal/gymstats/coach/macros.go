package coach

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/2beens/gymstats/internal/gymstats/workout"
)

// MacroEstimate is the nutritional breakdown of a single dish or food input.
type MacroEstimate struct {
	Dish     string  `json:"dish,omitempty"`
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
}

type rawMacros struct {
	Dish     string   `json:"dish"`
	Calories *float64 `json:"calories"`
	Protein  *float64 `json:"protein"`
	Carbs    *float64 `json:"carbs"`
	Fat      *float64 `json:"fat"`
}

// ParseMacros parses the generator reply for a macro breakdown. The reply must be a
// JSON object with numeric calories, protein, carbs and fat; a surrounding markdown
// code fence is tolerated.
func ParseMacros(reply string) (MacroEstimate, error) {
	body := stripCodeFence(reply)
	if body == "" {
		return MacroEstimate{}, macrosParseErr(errors.New("empty reply"))
	}

	var raw rawMacros
	if err := json.Unmarshal([]byte(body), &raw); err != nil {
		return MacroEstimate{}, macrosParseErr(err)
	}

	fields := []struct {
		name string
		val  *float64
	}{
		{"calories", raw.Calories},
		{"protein", raw.Protein},
		{"carbs", raw.Carbs},
		{"fat", raw.Fat},
	}
	for _, f := range fields {
		if f.val == nil {
			return MacroEstimate{}, macrosParseErr(fmt.Errorf("missing field %s", f.name))
		}
		if *f.val < 0 || math.IsNaN(*f.val) || math.IsInf(*f.val, 0) {
			return MacroEstimate{}, macrosParseErr(fmt.Errorf("invalid %s value: %v", f.name, *f.val))
		}
	}

	return MacroEstimate{
		Dish:     strings.TrimSpace(raw.Dish),
		Calories: *raw.Calories,
		Protein:  *raw.Protein,
		Carbs:    *raw.Carbs,
		Fat:      *raw.Fat,
	}, nil
}

func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	// optional language tag on the opening fence
	if nl := strings.IndexByte(s, '\n'); nl >= 0 {
		s = s[nl+1:]
	} else {
		s = ""
	}
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

func macrosParseErr(err error) error {
	return &workout.ExternalServiceError{
		Service: "coach",
		Op:      "parse macros",
		Err:     err,
	}
}

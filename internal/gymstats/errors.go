package gymstats

import (
	"errors"
	"net/http"
	"strings"

	"github.com/2beens/gymstats/internal/gymstats/coach"
	"github.com/2beens/gymstats/internal/gymstats/macros"
	"github.com/2beens/gymstats/internal/gymstats/workout"

	log "github.com/sirupsen/logrus"
)

// writeError maps domain errors to status codes. Only unexpected and upstream
// failures are logged as errors.
func writeError(w http.ResponseWriter, op string, err error) {
	switch {
	case workout.IsValidation(err):
		log.Debugf("%s: %s", op, err)
		http.Error(w, err.Error(), http.StatusBadRequest)
	case workout.IsNotFound(err), errors.Is(err, macros.ErrProfileNotFound):
		log.Debugf("%s: %s", op, err)
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, coach.ErrCoachDisabled), errors.Is(err, coach.ErrLabelsDisabled):
		http.Error(w, err.Error(), http.StatusServiceUnavailable)
	case workout.IsExternalService(err):
		log.Errorf("%s: %s", op, err)
		http.Error(w, "error, "+op+": upstream service failed", http.StatusBadGateway)
	default:
		log.Errorf("%s: %s", op, err)
		http.Error(w, "error, failed to "+op, http.StatusInternalServerError)
	}
}

func isJSONRequest(r *http.Request) bool {
	return strings.HasPrefix(r.Header.Get("Content-Type"), "application/json")
}

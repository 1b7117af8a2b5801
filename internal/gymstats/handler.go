package gymstats

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/2beens/gymstats/internal/gymstats/history"
	"github.com/2beens/gymstats/internal/gymstats/workout"
	"github.com/2beens/gymstats/internal/telemetry/metrics"
	"github.com/2beens/gymstats/internal/telemetry/tracing"
	"github.com/2beens/gymstats/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=gymstats_test

type sessionsEngine interface {
	Start(ctx context.Context, params workout.StartParams) (*workout.Session, error)
	AddExercise(ctx context.Context, sessionID string, in workout.ExerciseInput) (*workout.Session, error)
	RemoveExercise(ctx context.Context, sessionID, name string) (*workout.Session, error)
	Delete(ctx context.Context, sessionID string) error
	Log(ctx context.Context, sessionID string) (*workout.Session, error)
	Get(ctx context.Context, sessionID string) (*workout.Session, error)
	ListByUser(ctx context.Context, userID string) ([]*workout.Session, error)
}

type sessionAdvisor interface {
	Enabled() bool
	SessionAdvice(ctx context.Context, session *workout.Session) (string, error)
}

type StartSessionRequest struct {
	UserID string `json:"userId"`
	// RFC3339 timestamp or a plain YYYY-MM-DD date, empty means now
	Date  string `json:"date,omitempty"`
	Label string `json:"label,omitempty"`
}

type RemoveExerciseRequest struct {
	Name string `json:"name"`
}

type DeleteSessionResponse struct {
	DeletedID string `json:"deletedId"`
}

type LogSessionResponse struct {
	Session     *workout.Session `json:"session"`
	Summary     string           `json:"summary"`
	Advice      string           `json:"advice,omitempty"`
	AdviceError string           `json:"adviceError,omitempty"`
}

type SessionsListResponse struct {
	Sessions []*workout.Session `json:"sessions"`
	Total    int                `json:"total"`
}

type Handler struct {
	engine  sessionsEngine
	advisor sessionAdvisor
	metrics *metrics.Manager
}

// NewHandler creates the sessions handler. advisor is optional, without it logging
// a session returns no advice.
func NewHandler(engine sessionsEngine, advisor sessionAdvisor, metricsManager *metrics.Manager) *Handler {
	return &Handler{
		engine:  engine,
		advisor: advisor,
		metrics: metricsManager,
	}
}

func parseSessionDate(s string) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return &t, nil
	}
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return nil, &workout.ValidationError{Op: "start", Field: "date", Msg: "expected RFC3339 or YYYY-MM-DD"}
	}
	return &t, nil
}

func (handler *Handler) HandleStart(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.gymstats.start")
	defer span.End()

	if !isJSONRequest(r) {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return
	}

	var req StartSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Tracef("start session, unmarshal json params: %s", err)
		http.Error(w, "start session failed", http.StatusBadRequest)
		return
	}

	date, err := parseSessionDate(req.Date)
	if err != nil {
		writeError(w, "start session", err)
		return
	}

	session, err := handler.engine.Start(ctx, workout.StartParams{
		UserID: req.UserID,
		Date:   date,
		Label:  req.Label,
	})
	if err != nil {
		writeError(w, "start session", err)
		return
	}

	if handler.metrics != nil {
		handler.metrics.CounterSessionsStarted.Inc()
	}
	span.SetAttributes(attribute.String("session_id", session.ID))
	log.Debugf("session started: [%s] user [%s]", session.ID, session.UserID)
	pkg.WriteJSON(w, session, http.StatusCreated)
}

func (handler *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.gymstats.get")
	defer span.End()

	id := mux.Vars(r)["id"]
	session, err := handler.engine.Get(ctx, id)
	if err != nil {
		writeError(w, "get session", err)
		return
	}

	pkg.WriteJSON(w, session, http.StatusOK)
}

func (handler *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.gymstats.delete")
	defer span.End()

	id := mux.Vars(r)["id"]
	if err := handler.engine.Delete(ctx, id); err != nil {
		writeError(w, "delete session", err)
		return
	}

	log.Debugf("session deleted: [%s]", id)
	pkg.WriteJSON(w, DeleteSessionResponse{DeletedID: id}, http.StatusOK)
}

func (handler *Handler) HandleAddExercise(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.gymstats.add-exercise")
	defer span.End()

	if !isJSONRequest(r) {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return
	}

	var in workout.ExerciseInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		log.Tracef("add exercise, unmarshal json params: %s", err)
		http.Error(w, "add exercise failed", http.StatusBadRequest)
		return
	}

	id := mux.Vars(r)["id"]
	session, err := handler.engine.AddExercise(ctx, id, in)
	if err != nil {
		writeError(w, "add exercise", err)
		return
	}

	if handler.metrics != nil {
		handler.metrics.CounterExercisesAdded.Inc()
	}
	pkg.WriteJSON(w, session, http.StatusOK)
}

func (handler *Handler) HandleRemoveExercise(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.gymstats.remove-exercise")
	defer span.End()

	if !isJSONRequest(r) {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return
	}

	var req RemoveExerciseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Tracef("remove exercise, unmarshal json params: %s", err)
		http.Error(w, "remove exercise failed", http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		http.Error(w, "error, exercise name empty", http.StatusBadRequest)
		return
	}

	id := mux.Vars(r)["id"]
	session, err := handler.engine.RemoveExercise(ctx, id, req.Name)
	if err != nil {
		writeError(w, "remove exercise", err)
		return
	}

	pkg.WriteJSON(w, session, http.StatusOK)
}

// HandleLog logs the session and, when a coach is configured, asks for advice on it.
// A failing coach does not fail the request.
func (handler *Handler) HandleLog(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.gymstats.log")
	defer span.End()

	id := mux.Vars(r)["id"]
	session, err := handler.engine.Log(ctx, id)
	if err != nil {
		writeError(w, "log session", err)
		return
	}

	if handler.metrics != nil {
		handler.metrics.CounterSessionsLogged.Inc()
		handler.metrics.HistSessionVolume.Observe(session.TotalVolume())
	}

	resp := LogSessionResponse{
		Session: session,
		Summary: history.FormatSession(session),
	}

	if handler.advisor != nil && handler.advisor.Enabled() {
		advice, err := handler.advisor.SessionAdvice(ctx, session)
		if err != nil {
			log.Warnf("log session [%s]: get advice: %s", id, err)
			resp.AdviceError = "advice unavailable at the moment"
		} else {
			resp.Advice = advice
		}
	}

	log.Debugf("session logged: [%s] volume %.2f", session.ID, session.TotalVolume())
	pkg.WriteJSON(w, resp, http.StatusOK)
}

func (handler *Handler) HandleListByUser(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.gymstats.list-by-user")
	defer span.End()

	userID := mux.Vars(r)["userId"]
	sessions, err := handler.engine.ListByUser(ctx, userID)
	if err != nil {
		writeError(w, "list sessions", err)
		return
	}
	if sessions == nil {
		sessions = make([]*workout.Session, 0)
	}

	pkg.WriteJSON(w, SessionsListResponse{
		Sessions: sessions,
		Total:    len(sessions),
	}, http.StatusOK)
}

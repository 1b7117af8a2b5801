package gymstats

import (
	"context"
	"net/http"
	"strconv"

	"github.com/2beens/gymstats/internal/gymstats/history"
	"github.com/2beens/gymstats/internal/gymstats/progress"
	"github.com/2beens/gymstats/internal/gymstats/workout"
	"github.com/2beens/gymstats/internal/telemetry/tracing"
	"github.com/2beens/gymstats/pkg"

	"github.com/gorilla/mux"
	"go.opentelemetry.io/otel/attribute"
)

//go:generate mockgen -source=$GOFILE -destination=progress_handler_mocks_test.go -package=gymstats_test

type progressAggregator interface {
	Progress(ctx context.Context, userID, exercise string) (*progress.ExerciseProgress, error)
	Catalog(ctx context.Context, userID string) ([]string, error)
	DailyStats(ctx context.Context, userID, exercise string) ([]progress.DayStats, error)
}

type sessionsLister interface {
	ListByUser(ctx context.Context, userID string) ([]*workout.Session, error)
}

type CatalogResponse struct {
	Exercises []string `json:"exercises"`
}

type DailyStatsResponse struct {
	Exercise string              `json:"exercise"`
	Days     []progress.DayStats `json:"days"`
}

type HistoryResponse struct {
	History string `json:"history"`
}

type ProgressHandler struct {
	aggregator   progressAggregator
	sessions     sessionsLister
	historyLimit int
}

func NewProgressHandler(aggregator progressAggregator, sessions sessionsLister, historyLimit int) *ProgressHandler {
	if historyLimit <= 0 {
		historyLimit = history.DefaultLimit
	}
	return &ProgressHandler{
		aggregator:   aggregator,
		sessions:     sessions,
		historyLimit: historyLimit,
	}
}

func (handler *ProgressHandler) HandleProgress(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.gymstats.progress")
	defer span.End()

	vars := mux.Vars(r)
	userID, exercise := vars["userId"], vars["name"]
	span.SetAttributes(attribute.String("exercise", exercise))

	p, err := handler.aggregator.Progress(ctx, userID, exercise)
	if err != nil {
		writeError(w, "get progress", err)
		return
	}

	pkg.WriteJSON(w, p, http.StatusOK)
}

func (handler *ProgressHandler) HandleDailyStats(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.gymstats.daily-stats")
	defer span.End()

	vars := mux.Vars(r)
	userID, exercise := vars["userId"], vars["name"]

	days, err := handler.aggregator.DailyStats(ctx, userID, exercise)
	if err != nil {
		writeError(w, "get daily stats", err)
		return
	}

	pkg.WriteJSON(w, DailyStatsResponse{
		Exercise: workout.Normalize(exercise),
		Days:     days,
	}, http.StatusOK)
}

func (handler *ProgressHandler) HandleCatalog(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.gymstats.catalog")
	defer span.End()

	catalog, err := handler.aggregator.Catalog(ctx, mux.Vars(r)["userId"])
	if err != nil {
		writeError(w, "get catalog", err)
		return
	}

	pkg.WriteJSON(w, CatalogResponse{Exercises: catalog}, http.StatusOK)
}

// HandleHistory renders the recent workouts of a user as text.
// Query params: limit (default from config), onlyLogged (default false).
func (handler *ProgressHandler) HandleHistory(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.gymstats.history")
	defer span.End()

	limit := handler.historyLimit
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		l, err := strconv.Atoi(limitStr)
		if err != nil || l < 1 {
			http.Error(w, "invalid limit (has to be a positive number)", http.StatusBadRequest)
			return
		}
		limit = l
	}
	onlyLogged := r.URL.Query().Get("onlyLogged") == "true"

	sessions, err := handler.sessions.ListByUser(ctx, mux.Vars(r)["userId"])
	if err != nil {
		writeError(w, "get history", err)
		return
	}

	if onlyLogged {
		logged := make([]*workout.Session, 0, len(sessions))
		for _, s := range sessions {
			if s.IsLogged() {
				logged = append(logged, s)
			}
		}
		sessions = logged
	}

	span.SetAttributes(attribute.Int("sessions", len(sessions)))
	pkg.WriteJSON(w, HistoryResponse{
		History: history.FormatRecentHistory(sessions, limit),
	}, http.StatusOK)
}

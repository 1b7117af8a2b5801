//go:build integration_test || all_tests

package test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/2beens/gymstats/internal/gymstats"
	"github.com/2beens/gymstats/internal/gymstats/progress"
	"github.com/2beens/gymstats/internal/gymstats/workout"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (s *IntegrationTestSuite) doRequest(ctx context.Context, method, path string, body any) (int, []byte) {
	var reqBody io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(s.T(), err)
		reqBody = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, serverEndpoint+path, reqBody)
	require.NoError(s.T(), err)
	req.Header.Set("User-Agent", "test-agent")
	req.Header.Set("Authorization", "Bearer "+testAPIToken)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := s.httpClient.Do(req)
	require.NoError(s.T(), err)
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	require.NoError(s.T(), err)
	return resp.StatusCode, respBytes
}

func (s *IntegrationTestSuite) startSession(ctx context.Context, userID, date, label string) *workout.Session {
	status, body := s.doRequest(ctx, "POST", "/gymstats/sessions", gymstats.StartSessionRequest{
		UserID: userID,
		Date:   date,
		Label:  label,
	})
	require.Equal(s.T(), http.StatusCreated, status, string(body))

	var session workout.Session
	require.NoError(s.T(), json.Unmarshal(body, &session))
	return &session
}

func (s *IntegrationTestSuite) addExercise(ctx context.Context, sessionID string, in workout.ExerciseInput) *workout.Session {
	status, body := s.doRequest(ctx, "PATCH", fmt.Sprintf("/gymstats/sessions/%s/exercises", sessionID), in)
	require.Equal(s.T(), http.StatusOK, status, string(body))

	var session workout.Session
	require.NoError(s.T(), json.Unmarshal(body, &session))
	return &session
}

func (s *IntegrationTestSuite) logSession(ctx context.Context, sessionID string) gymstats.LogSessionResponse {
	status, body := s.doRequest(ctx, "PATCH", fmt.Sprintf("/gymstats/sessions/%s/log", sessionID), nil)
	require.Equal(s.T(), http.StatusOK, status, string(body))

	var resp gymstats.LogSessionResponse
	require.NoError(s.T(), json.Unmarshal(body, &resp))
	return resp
}

func (s *IntegrationTestSuite) TestSessions_Lifecycle() {
	ctx := context.Background()
	userID := gofakeit.UUID()

	session := s.startSession(ctx, userID, "2024-07-20", "push day")
	require.NotEmpty(s.T(), session.ID)
	assert.Equal(s.T(), workout.StateOpen, session.State)

	s.addExercise(ctx, session.ID, workout.ExerciseInput{
		Name: "  Bench   PRESS ", Sets: 2, Reps: []int{10, 8}, Weights: []float64{50, 60},
	})
	session = s.addExercise(ctx, session.ID, workout.ExerciseInput{
		Name: "squat", Sets: 2, Reps: []int{5, 5}, Weights: []float64{100, 100},
	})
	require.Len(s.T(), session.Exercises, 2)
	assert.Equal(s.T(), "bench press", session.Exercises[0].Name)
	assert.Equal(s.T(), 1980.0, session.TotalVolume())

	// config uses normalized matching on removal
	status, body := s.doRequest(ctx, "PATCH", fmt.Sprintf("/gymstats/sessions/%s/exercises/remove", session.ID),
		gymstats.RemoveExerciseRequest{Name: " SQUAT "})
	require.Equal(s.T(), http.StatusOK, status, string(body))
	require.NoError(s.T(), json.Unmarshal(body, session))
	require.Len(s.T(), session.Exercises, 1)
	assert.Equal(s.T(), 980.0, session.TotalVolume())

	logResp := s.logSession(ctx, session.ID)
	assert.Equal(s.T(), workout.StateLogged, logResp.Session.State)
	assert.NotNil(s.T(), logResp.Session.LoggedAt)
	assert.Equal(s.T(), "Sat, 20 Jul 2024 (push day)\n- bench press: 10 reps @ 50kg, 8 reps @ 60kg", logResp.Summary)
	assert.Empty(s.T(), logResp.Advice)

	// persisted in postgres
	var state string
	require.NoError(s.T(), s.dbPool.QueryRow(ctx, "SELECT state FROM workout_session WHERE id = $1", session.ID).Scan(&state))
	assert.Equal(s.T(), "logged", state)

	status, body = s.doRequest(ctx, "GET", fmt.Sprintf("/gymstats/users/%s/sessions", userID), nil)
	require.Equal(s.T(), http.StatusOK, status)
	var list gymstats.SessionsListResponse
	require.NoError(s.T(), json.Unmarshal(body, &list))
	assert.Equal(s.T(), 1, list.Total)

	status, body = s.doRequest(ctx, "DELETE", "/gymstats/sessions/"+session.ID, nil)
	require.Equal(s.T(), http.StatusOK, status, string(body))
	status, _ = s.doRequest(ctx, "GET", "/gymstats/sessions/"+session.ID, nil)
	assert.Equal(s.T(), http.StatusNotFound, status)
}

func (s *IntegrationTestSuite) TestSessions_InvalidInput() {
	ctx := context.Background()
	session := s.startSession(ctx, gofakeit.UUID(), "", "")

	status, _ := s.doRequest(ctx, "PATCH", fmt.Sprintf("/gymstats/sessions/%s/exercises", session.ID), workout.ExerciseInput{
		Name: "deadlift", Sets: 2, Reps: []int{5}, Weights: []float64{140, 140},
	})
	assert.Equal(s.T(), http.StatusBadRequest, status)

	status, _ = s.doRequest(ctx, "PATCH", fmt.Sprintf("/gymstats/sessions/%s/exercises", session.ID), workout.ExerciseInput{
		Name: "   ", Sets: 1, Reps: []int{5}, Weights: []float64{140},
	})
	assert.Equal(s.T(), http.StatusBadRequest, status)

	status, _ = s.doRequest(ctx, "PATCH", "/gymstats/sessions/no-such-session/log", nil)
	assert.Equal(s.T(), http.StatusNotFound, status)

	status, _ = s.doRequest(ctx, "POST", "/gymstats/sessions", gymstats.StartSessionRequest{})
	assert.Equal(s.T(), http.StatusBadRequest, status)
}

func (s *IntegrationTestSuite) TestProgress_AcrossSessions() {
	ctx := context.Background()
	userID := gofakeit.UUID()

	days := []struct {
		date   string
		weight float64
	}{
		{date: "2024-07-22", weight: 70},
		{date: "2024-07-20", weight: 60},
		{date: "2024-07-21", weight: 65},
	}
	for _, d := range days {
		session := s.startSession(ctx, userID, d.date, gofakeit.Word())
		s.addExercise(ctx, session.ID, workout.ExerciseInput{
			Name: "Overhead Press", Sets: 2, Reps: []int{5, 5}, Weights: []float64{d.weight, d.weight},
		})
		s.logSession(ctx, session.ID)
	}

	// open sessions count towards progress, but are left out of the logged history
	open := s.startSession(ctx, userID, "2024-07-23", "")
	s.addExercise(ctx, open.ID, workout.ExerciseInput{
		Name: "overhead press", Sets: 1, Reps: []int{5}, Weights: []float64{200},
	})

	status, body := s.doRequest(ctx, "GET",
		fmt.Sprintf("/gymstats/users/%s/exercises/%s/progress", userID, url.PathEscape("OVERHEAD press")), nil)
	require.Equal(s.T(), http.StatusOK, status, string(body))

	var p progress.ExerciseProgress
	require.NoError(s.T(), json.Unmarshal(body, &p))
	assert.Equal(s.T(), "overhead press", p.Exercise)
	require.Len(s.T(), p.Points, 4)
	assert.Equal(s.T(), 600.0, p.Points[0].Volume)
	assert.Equal(s.T(), 650.0, p.Points[1].Volume)
	assert.Equal(s.T(), 700.0, p.Points[2].Volume)
	assert.Equal(s.T(), 1000.0, p.Points[3].Volume)
	assert.True(s.T(), p.Points[0].Date.Before(p.Points[1].Date))

	status, body = s.doRequest(ctx, "GET", fmt.Sprintf("/gymstats/users/%s/catalog", userID), nil)
	require.Equal(s.T(), http.StatusOK, status)
	assert.JSONEq(s.T(), `{"exercises":["overhead press"]}`, string(body))

	status, body = s.doRequest(ctx, "GET", fmt.Sprintf("/gymstats/users/%s/history?limit=2&onlyLogged=true", userID), nil)
	require.Equal(s.T(), http.StatusOK, status)
	var history gymstats.HistoryResponse
	require.NoError(s.T(), json.Unmarshal(body, &history))
	assert.Contains(s.T(), history.History, "Mon, 22 Jul 2024")
	assert.Contains(s.T(), history.History, "Sun, 21 Jul 2024")
	assert.NotContains(s.T(), history.History, "Sat, 20 Jul 2024")
	assert.NotContains(s.T(), history.History, "200kg")
}

package coach

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/2beens/gymstats/internal/gymstats/history"
	"github.com/2beens/gymstats/internal/gymstats/workout"
	"github.com/2beens/gymstats/internal/telemetry/metrics"
	"github.com/2beens/gymstats/internal/telemetry/tracing"

	"github.com/coocood/freecache"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

var (
	ErrCoachDisabled  = errors.New("coach is not configured")
	ErrLabelsDisabled = errors.New("image labeling is not configured")
)

const (
	UnknownFood = "unknown food"

	askTemperature    = 0.7
	adviceTemperature = 0.7
	macrosTemperature = 0.3

	macrosCacheKeyPrefix = "macros:"
)

const coachSystemPrompt = `You are a helpful science-based fitness assistant looking to maximise hypertrophy. ` +
	`You aim to maximise muscle growth through mechanical tension while minimising central nervous system fatigue, ` +
	`and you suggest exercises that are stable and easy to progressively overload. ` +
	`Match muscular leverages and resistance profiles when picking exercises, and order them so that the ` +
	`user's priority muscle group is trained first.`

const adviceSystemPrompt = "You are a helpful and science-based lifting assistant."

const advicePromptTmpl = `The optimal rep range is 6-12 and 2-3 sets per exercise is typically optimal. ` +
	`Here's the user's workout today:
%s

Please give 2-3 concise suggestions to improve hypertrophy, stability, or recovery. Return them as plain bullet points. ` +
	`If the workout is already optimal and you have no criticism, just reply with encouragement.`

const macrosSystemPrompt = `You are a fitness coach in charge of macro calculation. Be as accurate as possible. ` +
	`Return the response as JSON like {"calories": number, "protein": number, "carbs": number, "fat": number}. ` +
	`Respond only in JSON. Do not include any explanation or text outside the JSON.`

const photoMacrosPromptTmpl = `Estimate the macros for a typical portion of %s. ` +
	`Return only JSON like {"dish": "...", "calories": 123, "protein": 10, "carbs": 15, "fat": 5}. ` +
	`Calories must equal carbs and protein in grams multiplied by 4 plus fat in grams multiplied by 9.`

//go:generate mockgen -source=$GOFILE -destination=service_mocks_test.go -package=coach_test

type sessionsLister interface {
	ListByUser(ctx context.Context, userID string) ([]*workout.Session, error)
}

type chatHistory interface {
	Recent(ctx context.Context, userID string) ([]Message, error)
	Append(ctx context.Context, userID string, messages ...Message) error
}

type labelDetector interface {
	DetectLabels(ctx context.Context, image []byte, mimeType string) ([]string, error)
}

type ServiceParams struct {
	Generator Generator
	Sessions  sessionsLister
	// optional
	Chat           chatHistory
	Labels         labelDetector
	MacrosCache    *freecache.Cache
	MacrosCacheTTL time.Duration
	HistoryLimit   int
	Metrics        *metrics.Manager
}

type Service struct {
	generator      Generator
	sessions       sessionsLister
	chat           chatHistory
	labels         labelDetector
	macrosCache    *freecache.Cache
	macrosCacheTTL time.Duration
	historyLimit   int
	metrics        *metrics.Manager
}

type PhotoMacros struct {
	FoodItem string        `json:"foodItem"`
	Macros   MacroEstimate `json:"macros"`
}

func NewService(params ServiceParams) *Service {
	historyLimit := params.HistoryLimit
	if historyLimit <= 0 {
		historyLimit = history.DefaultLimit
	}
	return &Service{
		generator:      params.Generator,
		sessions:       params.Sessions,
		chat:           params.Chat,
		labels:         params.Labels,
		macrosCache:    params.MacrosCache,
		macrosCacheTTL: params.MacrosCacheTTL,
		historyLimit:   historyLimit,
		metrics:        params.Metrics,
	}
}

func (s *Service) Enabled() bool {
	return s != nil && s.generator != nil
}

// Ask answers a free form question, using the user's recent logged workouts and
// the previous chat turns as context.
func (s *Service) Ask(ctx context.Context, userID, question string) (_ string, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "coach.ask")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
		s.observe("ask", err)
	}()
	span.SetAttributes(attribute.String("user", userID))

	if !s.Enabled() {
		return "", ErrCoachDisabled
	}

	userID = strings.TrimSpace(userID)
	question = strings.TrimSpace(question)
	if userID == "" {
		return "", &workout.ValidationError{Op: "ask coach", Field: "userId", Msg: "empty"}
	}
	if question == "" {
		return "", &workout.ValidationError{Op: "ask coach", Field: "question", Msg: "empty"}
	}

	sessions, err := s.sessions.ListByUser(ctx, userID)
	if err != nil {
		return "", fmt.Errorf("ask coach: %w", err)
	}
	logged := make([]*workout.Session, 0, len(sessions))
	for _, sess := range sessions {
		if sess.IsLogged() {
			logged = append(logged, sess)
		}
	}

	var prior []Message
	if s.chat != nil {
		prior, err = s.chat.Recent(ctx, userID)
		if err != nil {
			log.Warnf("coach ask [%s]: get chat history: %s", userID, err)
			prior = nil
		}
	}

	system := coachSystemPrompt + "\n\nThe user's recent workouts:\n" + history.FormatRecentHistory(logged, s.historyLimit)
	reply, err := s.generator.Generate(ctx, Prompt{
		System:      system,
		History:     prior,
		User:        question,
		Temperature: askTemperature,
	})
	if err != nil {
		return "", &workout.ExternalServiceError{Service: "coach", Op: "ask", Err: err}
	}

	if s.chat != nil {
		if err := s.chat.Append(ctx, userID,
			Message{Role: RoleUser, Content: question},
			Message{Role: RoleAssistant, Content: reply},
		); err != nil {
			log.Warnf("coach ask [%s]: append chat history: %s", userID, err)
		}
	}

	return reply, nil
}

// SessionAdvice asks for 2-3 suggestions about a just logged session.
func (s *Service) SessionAdvice(ctx context.Context, session *workout.Session) (_ string, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "coach.session_advice")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
		s.observe("advice", err)
	}()

	if !s.Enabled() {
		return "", ErrCoachDisabled
	}
	if session == nil || len(session.Exercises) == 0 {
		return "", &workout.ValidationError{Op: "session advice", Field: "exercises", Msg: "empty session"}
	}
	span.SetAttributes(attribute.String("session", session.ID))

	reply, err := s.generator.Generate(ctx, Prompt{
		System:      adviceSystemPrompt,
		User:        fmt.Sprintf(advicePromptTmpl, history.FormatSession(session)),
		Temperature: adviceTemperature,
	})
	if err != nil {
		return "", &workout.ExternalServiceError{Service: "coach", Op: "session advice", Err: err}
	}

	return reply, nil
}

// Macros estimates the macro breakdown of a free text food input. Estimates are cached
// by the normalized input.
func (s *Service) Macros(ctx context.Context, food string) (_ *MacroEstimate, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "coach.macros")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if !s.Enabled() {
		s.observe("macros", ErrCoachDisabled)
		return nil, ErrCoachDisabled
	}

	food = strings.TrimSpace(food)
	if food == "" {
		err = &workout.ValidationError{Op: "macros", Field: "foodInput", Msg: "empty"}
		s.observe("macros", err)
		return nil, err
	}
	span.SetAttributes(attribute.String("food", food))

	cacheKey := []byte(macrosCacheKeyPrefix + workout.Normalize(food))
	if cached, ok := s.cachedMacros(cacheKey); ok {
		span.SetAttributes(attribute.Bool("cache_hit", true))
		s.countCoach("macros", "cache_hit")
		return cached, nil
	}

	estimate, err := s.estimate(ctx, macrosSystemPrompt, "what are the macros of "+food)
	s.observe("macros", err)
	if err != nil {
		return nil, err
	}

	s.cacheMacros(cacheKey, estimate)
	return estimate, nil
}

// PhotoMacros names the food in the image and estimates its macros. When no label is
// detected the estimate is made for an unknown food.
func (s *Service) PhotoMacros(ctx context.Context, image []byte, mimeType string) (_ *PhotoMacros, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "coach.photo_macros")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
		s.observe("photo_macros", err)
	}()

	if !s.Enabled() {
		return nil, ErrCoachDisabled
	}
	if s.labels == nil {
		return nil, ErrLabelsDisabled
	}
	if len(image) == 0 {
		return nil, &workout.ValidationError{Op: "photo macros", Field: "image", Msg: "no image uploaded"}
	}
	span.SetAttributes(attribute.Int("image.size", len(image)))

	labels, err := s.labels.DetectLabels(ctx, image, mimeType)
	if err != nil {
		return nil, &workout.ExternalServiceError{Service: "labels", Op: "detect labels", Err: err}
	}

	foodItem := UnknownFood
	if len(labels) > 0 && strings.TrimSpace(labels[0]) != "" {
		foodItem = strings.TrimSpace(labels[0])
	}
	span.SetAttributes(attribute.String("food", foodItem))

	estimate, err := s.estimate(ctx, "Respond only in JSON. No extra text.", fmt.Sprintf(photoMacrosPromptTmpl, foodItem))
	if err != nil {
		return nil, err
	}
	if estimate.Dish == "" {
		estimate.Dish = foodItem
	}

	return &PhotoMacros{
		FoodItem: foodItem,
		Macros:   *estimate,
	}, nil
}

func (s *Service) estimate(ctx context.Context, system, user string) (*MacroEstimate, error) {
	reply, err := s.generator.Generate(ctx, Prompt{
		System:      system,
		User:        user,
		Temperature: macrosTemperature,
	})
	if err != nil {
		return nil, &workout.ExternalServiceError{Service: "coach", Op: "macros", Err: err}
	}

	estimate, err := ParseMacros(reply)
	if err != nil {
		return nil, err
	}
	return &estimate, nil
}

func (s *Service) cachedMacros(key []byte) (*MacroEstimate, bool) {
	if s.macrosCache == nil {
		return nil, false
	}
	raw, err := s.macrosCache.Get(key)
	if err != nil {
		if !errors.Is(err, freecache.ErrNotFound) {
			log.Warnf("macros cache get: %s", err)
		}
		return nil, false
	}
	var estimate MacroEstimate
	if err := json.Unmarshal(raw, &estimate); err != nil {
		log.Warnf("macros cache decode: %s", err)
		return nil, false
	}
	return &estimate, true
}

func (s *Service) cacheMacros(key []byte, estimate *MacroEstimate) {
	if s.macrosCache == nil {
		return
	}
	raw, err := json.Marshal(estimate)
	if err != nil {
		log.Warnf("macros cache encode: %s", err)
		return
	}
	if err := s.macrosCache.Set(key, raw, int(s.macrosCacheTTL.Seconds())); err != nil {
		log.Warnf("macros cache set: %s", err)
	}
}

func (s *Service) observe(kind string, err error) {
	switch {
	case err == nil:
		s.countCoach(kind, "ok")
	case errors.Is(err, ErrCoachDisabled), errors.Is(err, ErrLabelsDisabled):
		s.countCoach(kind, "disabled")
	case workout.IsValidation(err):
		s.countCoach(kind, "invalid")
	default:
		s.countCoach(kind, "error")
	}
}

func (s *Service) countCoach(kind, outcome string) {
	if s == nil || s.metrics == nil {
		return
	}
	s.metrics.CounterCoachRequests.WithLabelValues(kind, outcome).Inc()
}

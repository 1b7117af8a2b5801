package gymstats

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/2beens/gymstats/internal/gymstats/coach"
	"github.com/2beens/gymstats/internal/gymstats/labels"
	"github.com/2beens/gymstats/internal/gymstats/macros"
	"github.com/2beens/gymstats/internal/telemetry/tracing"
	"github.com/2beens/gymstats/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

const photoFormField = "image"

//go:generate mockgen -source=$GOFILE -destination=coach_handler_mocks_test.go -package=gymstats_test

type coachService interface {
	Ask(ctx context.Context, userID, question string) (string, error)
	Macros(ctx context.Context, food string) (*coach.MacroEstimate, error)
	PhotoMacros(ctx context.Context, image []byte, mimeType string) (*coach.PhotoMacros, error)
}

type macroProfileStore interface {
	Save(ctx context.Context, record *macros.Record) error
	FindByUser(ctx context.Context, userID string) (*macros.Record, error)
}

type AskRequest struct {
	UserID   string `json:"userId"`
	Question string `json:"question"`
}

type AskResponse struct {
	Response string `json:"response"`
}

type MacrosRequest struct {
	FoodInput string `json:"foodInput"`
}

type CoachHandler struct {
	coach              coachService
	profiles           macroProfileStore
	maxPhotoUploadSize int64
}

func NewCoachHandler(coachSvc coachService, profiles macroProfileStore, maxPhotoUploadSizeMB int64) *CoachHandler {
	if maxPhotoUploadSizeMB <= 0 {
		maxPhotoUploadSizeMB = 10
	}
	return &CoachHandler{
		coach:              coachSvc,
		profiles:           profiles,
		maxPhotoUploadSize: maxPhotoUploadSizeMB << 20,
	}
}

func (handler *CoachHandler) HandleAsk(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.coach.ask")
	defer span.End()

	if !isJSONRequest(r) {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return
	}

	var req AskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Tracef("ask coach, unmarshal json params: %s", err)
		http.Error(w, "ask coach failed", http.StatusBadRequest)
		return
	}
	span.SetAttributes(attribute.String("user_id", req.UserID))

	reply, err := handler.coach.Ask(ctx, req.UserID, req.Question)
	if err != nil {
		writeError(w, "ask coach", err)
		return
	}

	pkg.WriteJSON(w, AskResponse{Response: reply}, http.StatusOK)
}

func (handler *CoachHandler) HandleMacros(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.coach.macros")
	defer span.End()

	if !isJSONRequest(r) {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return
	}

	var req MacrosRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Tracef("macros, unmarshal json params: %s", err)
		http.Error(w, "macros failed", http.StatusBadRequest)
		return
	}

	estimate, err := handler.coach.Macros(ctx, req.FoodInput)
	if err != nil {
		writeError(w, "estimate macros", err)
		return
	}

	pkg.WriteJSON(w, estimate, http.StatusOK)
}

// HandlePhotoMacros expects a multipart form with the photo in the "image" field.
func (handler *CoachHandler) HandlePhotoMacros(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.coach.photo-macros")
	defer span.End()

	r.Body = http.MaxBytesReader(w, r.Body, handler.maxPhotoUploadSize)
	if err := r.ParseMultipartForm(handler.maxPhotoUploadSize); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			http.Error(w, "error, image too large", http.StatusRequestEntityTooLarge)
			return
		}
		log.Tracef("photo macros, parse multipart form: %s", err)
		http.Error(w, "error, no image uploaded", http.StatusBadRequest)
		return
	}
	defer func() {
		if r.MultipartForm != nil {
			_ = r.MultipartForm.RemoveAll()
		}
	}()

	file, header, err := r.FormFile(photoFormField)
	if err != nil {
		http.Error(w, "error, no image uploaded", http.StatusBadRequest)
		return
	}
	defer file.Close()

	image, err := io.ReadAll(file)
	if err != nil {
		log.Errorf("photo macros, read image: %s", err)
		http.Error(w, "error, failed to read image", http.StatusBadRequest)
		return
	}

	mimeType := header.Header.Get("Content-Type")
	if mimeType == "" || mimeType == "application/octet-stream" {
		mimeType = http.DetectContentType(image)
	}
	if !labels.SupportedMimeType(mimeType) {
		http.Error(w, "error, unsupported image type", http.StatusUnsupportedMediaType)
		return
	}
	span.SetAttributes(attribute.String("mime_type", mimeType))
	span.SetAttributes(attribute.Int("image.size", len(image)))

	res, err := handler.coach.PhotoMacros(ctx, image, mimeType)
	if err != nil {
		writeError(w, "estimate photo macros", err)
		return
	}

	pkg.WriteJSON(w, res, http.StatusOK)
}

// HandleMacroProfile computes the targets for the posted profile and saves both,
// replacing the user's previous profile.
func (handler *CoachHandler) HandleMacroProfile(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.coach.macro-profile")
	defer span.End()

	if !isJSONRequest(r) {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return
	}

	var profile macros.Profile
	if err := json.NewDecoder(r.Body).Decode(&profile); err != nil {
		log.Tracef("macro profile, unmarshal json params: %s", err)
		http.Error(w, "macro profile failed", http.StatusBadRequest)
		return
	}
	span.SetAttributes(attribute.String("user_id", profile.UserID))

	record, err := macros.NewRecord(profile, time.Now())
	if err != nil {
		writeError(w, "calculate macro profile", err)
		return
	}

	if err := handler.profiles.Save(ctx, record); err != nil {
		writeError(w, "save macro profile", err)
		return
	}

	pkg.WriteJSON(w, record, http.StatusCreated)
}

func (handler *CoachHandler) HandleGetMacroProfile(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.coach.get-macro-profile")
	defer span.End()

	userID := mux.Vars(r)["userId"]
	span.SetAttributes(attribute.String("user_id", userID))

	record, err := handler.profiles.FindByUser(ctx, userID)
	if err != nil {
		writeError(w, "get macro profile", err)
		return
	}

	pkg.WriteJSON(w, record, http.StatusOK)
}

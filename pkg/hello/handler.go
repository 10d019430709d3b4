package hello

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/birthdaysvc/birthdayd/pkg/errors"
	"github.com/birthdaysvc/birthdayd/pkg/serializers"
)

// maxRequestBodyBytes bounds the PUT body; a valid request is a single
// short JSON object.
const maxRequestBodyBytes = 4 << 10

// UserBirthdayRequest is the PUT /hello/{username} request body.
type UserBirthdayRequest struct {
	DateOfBirth string `json:"dateOfBirth"`
}

// MessageResponse is the GET /hello/{username} success body.
type MessageResponse struct {
	Message string `json:"message"`
}

// Handler serves the birthday resource. Parsing and validation run before
// any store or calculator call; a handler body only ever sees domain values
// that already passed validation.
type Handler struct {
	store Store
	now   func() Date
}

// HandlerOption configures a Handler.
type HandlerOption func(*Handler)

// WithClock overrides the reference-date source, used in tests to pin "today".
func WithClock(now func() Date) HandlerOption {
	return func(h *Handler) {
		h.now = now
	}
}

// NewHandler creates a Handler backed by the given store.
func NewHandler(store Store, opts ...HandlerOption) *Handler {
	h := &Handler{
		store: store,
		now:   Today,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Routes returns the route patterns served by this handler, keyed the way
// http.ServeMux expects method-qualified patterns.
func (h *Handler) Routes() map[string]http.HandlerFunc {
	return map[string]http.HandlerFunc{
		"PUT /hello/{username}": h.handleUpsert,
		"GET /hello/{username}": h.handleGet,
	}
}

// handleUpsert stores or replaces the date of birth for a username.
func (h *Handler) handleUpsert(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	username, err := ValidateUsername(r.PathValue("username"))
	if err != nil {
		respondError(w, err)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodyBytes)
	var req UserBirthdayRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, errors.Wrap(errors.ErrCodeBadFormat,
			"Invalid request body. Expected JSON with a dateOfBirth field.", err))
		return
	}

	dob, err := ValidateDateOfBirth(req.DateOfBirth, h.now())
	if err != nil {
		respondError(w, err)
		return
	}

	if err := h.store.UpsertBirthday(ctx, username, dob); err != nil {
		slog.ErrorContext(ctx, "failed to store birthday",
			"username", username,
			"error", err,
		)
		respondError(w, err)
		return
	}

	slog.DebugContext(ctx, "birthday stored", "username", username)
	w.WriteHeader(http.StatusNoContent)
}

// handleGet returns the next-birthday message for a username.
func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	username, err := ValidateUsername(r.PathValue("username"))
	if err != nil {
		respondError(w, err)
		return
	}

	record, err := h.store.GetBirthday(ctx, username)
	if err != nil {
		slog.ErrorContext(ctx, "failed to load birthday",
			"username", username,
			"error", err,
		)
		respondError(w, err)
		return
	}

	if record == nil {
		respondError(w, errors.New(errors.ErrCodeNotFound,
			"No birthday found for user "+username+"."))
		return
	}

	serializers.RespondJSON(w, http.StatusOK, MessageResponse{
		Message: Describe(username, record.DOB, h.now()),
	})
}

// respondError is the single point mapping typed failures to HTTP responses.
// Structured errors surface their client-safe message; anything else becomes
// a generic 500 so internal detail stays in the logs.
func respondError(w http.ResponseWriter, err error) {
	var serr *errors.StructuredError
	if errors.As(err, &serr) {
		serializers.RespondError(w, errors.HTTPStatus(serr.Code), serr.Message)
		return
	}
	serializers.RespondError(w, http.StatusInternalServerError, "Internal server error")
}

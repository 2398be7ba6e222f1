package rest

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/striketrack/backend/internal/domain"
	"github.com/striketrack/backend/internal/tracker"
)

// trackerService defines the minimal interface needed by TrackerHandler.
type trackerService interface {
	Dashboard(ctx context.Context) ([]tracker.UserDashboard, []domain.UserSummary, error)
	AddStrike(ctx context.Context, in tracker.AddStrikeInput) error
	SendReport(ctx context.Context) (string, error)
}

// TrackerHandler serves the tracker REST endpoints.
type TrackerHandler struct {
	svc trackerService
	log *slog.Logger
}

// NewTrackerHandler creates a TrackerHandler.
func NewTrackerHandler(svc trackerService, logger *slog.Logger) *TrackerHandler {
	return &TrackerHandler{svc: svc, log: logger.With("handler", "tracker")}
}

type dashboardResponse struct {
	Users []tracker.UserDashboard `json:"users"`
}

type summaryResponse struct {
	Summaries []domain.UserSummary `json:"summaries"`
	Leaders   []string             `json:"leaders,omitempty"`
}

type reportResponse struct {
	Report string `json:"report"`
}

// Dashboard handles GET /api/v1/tracker: the per-user goal tables.
func (h *TrackerHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	boards, _, err := h.svc.Dashboard(r.Context())
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, dashboardResponse{Users: boards})
}

// Summary handles GET /api/v1/summary: headline strike counts and leaders.
func (h *TrackerHandler) Summary(w http.ResponseWriter, r *http.Request) {
	_, summaries, err := h.svc.Dashboard(r.Context())
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, summaryResponse{
		Summaries: summaries,
		Leaders:   tracker.Leaders(summaries),
	})
}

// AddStrike handles POST /api/v1/strikes (admin only).
func (h *TrackerHandler) AddStrike(w http.ResponseWriter, r *http.Request) {
	var in tracker.AddStrikeInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.svc.AddStrike(r.Context(), in); err != nil {
		h.handleError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{"status": "recorded"})
}

// Report handles POST /api/v1/report (admin only): builds the strike report,
// delivers it to the chat sink and echoes the text back.
func (h *TrackerHandler) Report(w http.ResponseWriter, r *http.Request) {
	text, err := h.svc.SendReport(r.Context())
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, reportResponse{Report: text})
}

func (h *TrackerHandler) handleError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, "not found")
	case errors.Is(err, domain.ErrUnauthorized):
		writeError(w, http.StatusUnauthorized, "unauthorized")
	case errors.Is(err, domain.ErrForbidden):
		writeError(w, http.StatusForbidden, "forbidden")
	case errors.Is(err, domain.ErrAlreadyExists):
		writeError(w, http.StatusConflict, "already exists")
	default:
		h.log.ErrorContext(r.Context(), "internal error", slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
